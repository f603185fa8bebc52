package transport

import (
	"errors"
	"net/http"

	"brewbar-be/internal/logger"
	"brewbar-be/internal/purchase"
	"brewbar-be/internal/utils"
	"brewbar-be/internal/validation"

	"go.uber.org/zap"
)

type PurchaseHandler struct {
	purchases purchase.Service
}

func NewPurchaseHandler(purchases purchase.Service) *PurchaseHandler {
	return &PurchaseHandler{purchases: purchases}
}

// SinglePurchase handles POST /api/singlepurchase. The route guard guarantees
// an authenticated caller, so the buyer is always the context identity.
func (h *PurchaseHandler) SinglePurchase(w http.ResponseWriter, r *http.Request) {
	var req PurchaseRequest
	if err := validation.DecodeAndValidate(r, &req); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	email := utils.GetUserEmailFromContext(r.Context())

	orderID, err := h.purchases.Purchase(r.Context(), req.ItemID, req.Quantity, email, req.Total)
	if err != nil {
		switch {
		case errors.Is(err, purchase.ErrItemNotFound):
			utils.WriteJSONError(w, "item not found", http.StatusNotFound)
		case errors.Is(err, purchase.ErrInsufficientStock):
			utils.WriteJSONError(w, "insufficient stock", http.StatusConflict)
		case errors.Is(err, purchase.ErrTransactionConflict):
			// Retriable by the client; nothing was committed.
			utils.WriteJSONError(w, "purchase conflicted, please retry", http.StatusConflict)
		default:
			logger.FromCtx(r.Context()).Error("purchase failed", zap.Error(err))
			utils.WriteJSONError(w, "purchase failed", http.StatusInternalServerError)
		}
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]any{
		"order_id": orderID,
		"status":   "pending",
	})
}
