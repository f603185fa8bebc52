package purchase

import "errors"

var (
	ErrItemNotFound      = errors.New("item not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrTransactionConflict is retriable; retrying is the caller's call.
	ErrTransactionConflict = errors.New("transaction conflict")
)
