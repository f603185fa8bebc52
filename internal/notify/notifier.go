package notify

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"brewbar-be/internal/logger"
	"brewbar-be/internal/metrics"
	"brewbar-be/internal/order"
	"brewbar-be/internal/ws"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

const (
	// Channels the items/orders triggers NOTIFY on.
	ChannelItemUpdates  = "item_updates"
	ChannelOrderChanged = "order_changed"

	// Idle listeners ping the server so a quiet connection is not reaped.
	keepAliveInterval = 60 * time.Second
)

// Listener is the slice of *pq.Listener the notifier needs. pq handles
// reconnects internally; a nil notification on the channel marks one.
type Listener interface {
	Listen(channel string) error
	NotificationChannel() <-chan *pq.Notification
	Ping() error
	Close() error
}

// Notifier drains commit-time change events from the database and fans them
// out to live subscribers. One instance runs for the life of the process,
// independent of any request.
type Notifier struct {
	listener Listener
	registry *ws.Registry
	orders   order.Service
	stats    *metrics.Store
}

func New(listener Listener, registry *ws.Registry, orders order.Service, stats *metrics.Store) *Notifier {
	return &Notifier{
		listener: listener,
		registry: registry,
		orders:   orders,
		stats:    stats,
	}
}

// Run blocks until ctx is canceled or the listener breaks permanently.
func (n *Notifier) Run(ctx context.Context) error {
	log := logger.L().With(zap.String("component", "notifier"))

	for _, channel := range []string{ChannelItemUpdates, ChannelOrderChanged} {
		if err := n.listener.Listen(channel); err != nil {
			return err
		}
	}
	defer n.listener.Close()

	log.Info("listening for change events")

	notifications := n.listener.NotificationChannel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ntf, ok := <-notifications:
			if !ok {
				return errors.New("notification channel closed")
			}
			if ntf == nil {
				// Reconnect marker. Events during the outage are gone;
				// clients recover by re-reading the full-state endpoints.
				log.Warn("listener reconnected, events may have been missed")
				continue
			}
			n.dispatch(ctx, ntf.Channel, ntf.Extra)

		case <-time.After(keepAliveInterval):
			if err := n.listener.Ping(); err != nil {
				log.Warn("listener ping failed", zap.Error(err))
			}
		}
	}
}

func (n *Notifier) dispatch(ctx context.Context, channel, payload string) {
	switch channel {
	case ChannelItemUpdates:
		n.handleItemUpdate(payload)
	case ChannelOrderChanged:
		n.handleOrderChanged(ctx, payload)
	default:
		logger.L().Warn("notification on unexpected channel", zap.String("channel", channel))
	}
}

// handleItemUpdate forwards the trigger payload as-is to watchers of that item
// and to the all-items stock feed.
func (n *Notifier) handleItemUpdate(payload string) {
	log := logger.L().With(zap.String("channel", ChannelItemUpdates))

	var evt struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal([]byte(payload), &evt); err != nil {
		log.Error("malformed item event payload", zap.Error(err))
		return
	}

	msg := json.RawMessage(payload)
	n.push(ws.ItemKey(evt.ID), msg)
	n.push(ws.StockKey, msg)
}

// handleOrderChanged re-reads the owning customer's full order list and pushes
// the partitioned snapshot, not a delta: the client always lands on a
// consistent view even if an earlier push was dropped.
func (n *Notifier) handleOrderChanged(ctx context.Context, payload string) {
	log := logger.L().With(zap.String("channel", ChannelOrderChanged))

	var evt struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal([]byte(payload), &evt); err != nil {
		log.Error("malformed order event payload", zap.Error(err))
		return
	}

	email, snap, err := n.orders.SnapshotForOrder(ctx, evt.ID)
	if err != nil {
		log.Error("failed to build order snapshot",
			zap.Int64("order_id", evt.ID),
			zap.Error(err),
		)
		return
	}

	n.push(ws.OrdersKey(email), snap)
}

// push delivers to every subscriber of the key. A failed subscriber is reaped
// and never blocks delivery to the rest.
func (n *Notifier) push(key string, payload any) {
	for _, conn := range n.registry.ByInterest(key) {
		if err := conn.WriteJSON(payload); err != nil {
			logger.L().Info("reaping dead subscriber",
				zap.String("interest", key),
				zap.Error(err),
			)
			n.registry.Unsubscribe(key, conn)
			_ = conn.Close()
			n.stats.SubscribersReaped.Inc()
			continue
		}
		n.stats.NotificationsDelivered.Inc()
	}
}
