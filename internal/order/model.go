package order

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready for pickup"
	StatusPickedUp  Status = "picked up"
)

type Order struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Status    Status    `json:"status"`
	Total     float64   `json:"total"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Line struct {
	ID        int64   `json:"id"`
	OrderID   int64   `json:"order_id"`
	ItemID    int64   `json:"item_id"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

// Snapshot is the full partitioned view a customer sees: everything still in
// flight under "orders", picked-up history under "old_reciepts". The key spelling
// is the storefront's wire contract.
type Snapshot struct {
	Orders      []*Order `json:"orders"`
	OldReciepts []*Order `json:"old_reciepts"`
}

// Done reports whether the status removes the order from the current list.
func (s Status) Done() bool {
	return s == StatusPickedUp
}
