package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Store aggregates the process counters surfaced on the admin metrics endpoint.
type Store struct {
	PurchasesCommitted     Counter
	PurchasesRejected      Counter
	NotificationsDelivered Counter
	SubscribersReaped      Counter
}

func (s *Store) Snapshot() map[string]uint64 {
	return map[string]uint64{
		"purchases_committed":     s.PurchasesCommitted.Load(),
		"purchases_rejected":      s.PurchasesRejected.Load(),
		"notifications_delivered": s.NotificationsDelivered.Load(),
		"subscribers_reaped":      s.SubscribersReaped.Load(),
	}
}
