package item

type Item struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Category        string  `json:"category"`
	UnitPrice       float64 `json:"unit_price"`
	Tax             float64 `json:"tax"`
	QuantityInStock int     `json:"quantity_in_stock"`
	Img             []byte  `json:"img,omitempty"`
}

// CreateParams carries the admin form fields for a new catalog item.
type CreateParams struct {
	Name        string
	Description string
	Category    string
	UnitPrice   float64
	Tax         float64
	Stock       int
	Img         []byte
}

type UpdateParams struct {
	Name        *string
	Description *string
	Category    *string
	UnitPrice   *float64
	Tax         *float64
	Stock       *int
	Img         []byte
}
