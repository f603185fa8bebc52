package ws

import (
	"net/http"
	"strconv"
	"time"

	"brewbar-be/internal/auth"
	"brewbar-be/internal/logger"
	"brewbar-be/internal/order"
	"brewbar-be/internal/user"
	"brewbar-be/internal/utils"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handler upgrades live-update connections and parks them in the registry
// until the peer goes away. Pushing is the notifier's job; the read loop here
// only exists to notice disconnects and answer pings.
type Handler struct {
	registry *Registry
	orders   order.Service
	upgrader websocket.Upgrader
}

func NewHandler(registry *Registry, orders order.Service) *Handler {
	return &Handler{
		registry: registry,
		orders:   orders,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browser origin enforcement is handled by the CORS layer.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeItem watches a single catalog item: GET /ws/item/{id}.
func (h *Handler) ServeItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		utils.WriteJSONError(w, "invalid item id", http.StatusBadRequest)
		return
	}

	h.serve(w, r, ItemKey(itemID), nil)
}

// ServeStock watches the whole catalog: GET /ws/stock.
func (h *Handler) ServeStock(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, StockKey, nil)
}

// ServeOrders watches the caller's own orders: GET /ws/orders?token=...
// The full snapshot is pushed immediately on connect so a client that missed
// events while away starts consistent.
func (h *Handler) ServeOrders(w http.ResponseWriter, r *http.Request) {
	claims, err := user.ParseJWT(auth.ExtractAccessToken(r))
	if err != nil {
		utils.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	snap, err := h.orders.ListOrders(r.Context(), claims.Email)
	if err != nil {
		utils.WriteJSONError(w, "failed to load orders", http.StatusInternalServerError)
		return
	}

	h.serve(w, r, OrdersKey(claims.Email), snap)
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request, key string, initial any) {
	log := logger.FromCtx(r.Context()).With(
		zap.String("interest", key),
		zap.String("remote", r.RemoteAddr),
	)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := NewClient(conn)
	h.registry.Subscribe(key, client)
	log.Info("subscriber connected")

	// Cleanup runs on every exit path so the registry never outlives the
	// connection.
	defer func() {
		h.registry.Unsubscribe(key, client)
		_ = client.Close()
		log.Info("subscriber disconnected")
	}()

	if initial != nil {
		if err := client.WriteJSON(initial); err != nil {
			log.Warn("failed to push initial snapshot", zap.Error(err))
			return
		}
	}

	// Keep-alive: ping on a timer, expect pongs before the read deadline.
	stop := make(chan struct{})
	defer close(stop)
	go h.keepAlive(client, stop)

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Handler) keepAlive(client *Client, stop <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := client.Ping(); err != nil {
				return
			}
		}
	}
}
