package transport

import (
	"net/http"

	"brewbar-be/internal/logger"
	"brewbar-be/internal/metrics"
	"brewbar-be/internal/middleware"
	"brewbar-be/internal/utils"
	"brewbar-be/internal/ws"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth     *AuthHandler
	Items    *ItemHandler
	Orders   *OrderHandler
	Purchase *PurchaseHandler
	Live     *ws.Handler
	Stats    *metrics.Store
}

// NewRouter wires routes, guards and the middleware chain.
func NewRouter(h Handlers) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)

	mux.HandleFunc("GET /api/items", h.Items.List)

	admin := func(fn http.HandlerFunc) http.Handler {
		return middleware.RequireAdmin(fn)
	}
	mux.Handle("GET /api/admin/items", admin(h.Items.List))
	mux.Handle("GET /api/admin/item/{id}", admin(h.Items.Get))
	mux.Handle("POST /api/admin/additem", admin(h.Items.Create))
	mux.Handle("PUT /api/admin/item/{id}", admin(h.Items.Update))
	mux.Handle("DELETE /api/admin/item/{id}", admin(h.Items.Delete))
	mux.Handle("PATCH /api/admin/order/{id}/status", admin(h.Orders.UpdateStatus))
	mux.Handle("GET /api/admin/metrics", admin(h.metricsHandler()))

	mux.Handle("GET /api/orders", middleware.RequireUser(http.HandlerFunc(h.Orders.List)))
	mux.Handle("POST /api/singlepurchase", middleware.RequireUser(http.HandlerFunc(h.Purchase.SinglePurchase)))

	mux.HandleFunc("GET /ws/item/{id}", h.Live.ServeItem)
	mux.HandleFunc("GET /ws/stock", h.Live.ServeStock)
	mux.HandleFunc("GET /ws/orders", h.Live.ServeOrders)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Outermost first: request id, logging, CORS, auth resolution, rate limit.
	// Auth runs before the limiter so authenticated traffic is keyed by email.
	var handler http.Handler = mux
	handler = middleware.RateLimitMiddleware(handler)
	handler = middleware.AuthMiddleware(handler)
	handler = middleware.CORSMiddleware(handler)
	handler = logger.LoggingMiddleware(handler)
	handler = logger.RequestIDMiddleware(handler)
	return handler
}

func (h Handlers) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, http.StatusOK, h.Stats.Snapshot())
	}
}
