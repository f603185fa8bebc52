package transport

import (
	"errors"
	"net/http"
	"strconv"

	"brewbar-be/internal/logger"
	"brewbar-be/internal/order"
	"brewbar-be/internal/utils"
	"brewbar-be/internal/validation"

	"go.uber.org/zap"
)

type OrderHandler struct {
	orders order.Service
}

func NewOrderHandler(orders order.Service) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// List handles GET /api/orders: the caller's current orders and receipts.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	email := utils.GetUserEmailFromContext(r.Context())

	snap, err := h.orders.ListOrders(r.Context(), email)
	if err != nil {
		logger.FromCtx(r.Context()).Error("failed to load orders", zap.Error(err))
		utils.WriteJSONError(w, "failed to load orders", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusOK, snap)
}

// UpdateStatus handles PATCH /api/admin/order/{id}/status. The commit fires the
// orders trigger, which pushes the owner's refreshed snapshot over websocket.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || orderID <= 0 {
		utils.WriteJSONError(w, "invalid order id", http.StatusBadRequest)
		return
	}

	var req StatusUpdateRequest
	if err := validation.DecodeAndValidate(r, &req); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.orders.UpdateStatus(r.Context(), orderID, order.Status(req.Status)); err != nil {
		switch {
		case errors.Is(err, order.ErrInvalidStatus):
			utils.WriteJSONError(w, "invalid order status", http.StatusBadRequest)
		case errors.Is(err, order.ErrOrderNotFound):
			utils.WriteJSONError(w, "order not found", http.StatusNotFound)
		default:
			logger.FromCtx(r.Context()).Error("failed to update order status", zap.Error(err))
			utils.WriteJSONError(w, "failed to update order status", http.StatusInternalServerError)
		}
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "status updated"})
}
