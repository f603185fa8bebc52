package transport

// JSON request payloads, validated at the boundary before any service call.

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type PurchaseRequest struct {
	ItemID   int64   `json:"item_id" validate:"required,gt=0"`
	Quantity int     `json:"quantity" validate:"required,gt=0"`
	Total    float64 `json:"total" validate:"gte=0"`
}

type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}
