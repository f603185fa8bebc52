package ws

import (
	"strconv"
	"sync"
)

// Interest keys. A connection registers exactly one: a single item, the whole
// stock feed, or one customer's orders.
func ItemKey(itemID int64) string {
	return "item:" + strconv.FormatInt(itemID, 10)
}

const StockKey = "stock"

func OrdersKey(email string) string {
	return "orders:" + email
}

// Registry tracks live connections by interest key. Mutated only on
// connect/disconnect; read on every fan-out. Safe for concurrent use.
type Registry struct {
	mu   sync.RWMutex
	subs map[string]map[Conn]struct{}
}

func NewRegistry() *Registry {
	return &Registry{subs: make(map[string]map[Conn]struct{})}
}

func (r *Registry) Subscribe(key string, c Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.subs[key]
	if !ok {
		set = make(map[Conn]struct{})
		r.subs[key] = set
	}
	set[c] = struct{}{}
}

func (r *Registry) Unsubscribe(key string, c Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.subs[key]
	if !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(r.subs, key)
	}
}

// ByInterest returns a snapshot slice so callers can push without holding the
// registry lock across network writes.
func (r *Registry) ByInterest(key string) []Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set := r.subs[key]
	if len(set) == 0 {
		return nil
	}

	conns := make([]Conn, 0, len(set))
	for c := range set {
		conns = append(conns, c)
	}
	return conns
}

// Count reports subscribers for a key; used by tests and the metrics endpoint.
func (r *Registry) Count(key string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs[key])
}
