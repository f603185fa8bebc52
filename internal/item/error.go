package item

import "errors"

var (
	ErrNotFound  = errors.New("item not found")
	ErrNameTaken = errors.New("item name already exists")
	ErrInUse     = errors.New("item referenced by existing orders")
	ErrNoFields  = errors.New("no fields to update")
)
