package realtime

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Filter selects events for one table, optionally narrowed to a city.
type Filter struct {
	Table    string
	CitySlug string
}

func (f Filter) match(e Event) bool {
	if f.Table != "" && f.Table != e.Table {
		return false
	}
	if f.CitySlug != "" && field(e.row(), "city_slug") != f.CitySlug {
		return false
	}
	return true
}

type Subscription struct {
	C      <-chan Event
	ch     chan Event
	filter Filter
	hub    *Hub
	once   sync.Once
}

// Close detaches the subscription and closes C.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.remove(s)
	})
}

// Each calls fn for every event until ctx is done, fn fails or the subscription is closed.
func (s *Subscription) Each(ctx context.Context, fn func(Event) error) error {
	defer s.Close()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e, ok := <-s.C:
			if !ok {
				return nil
			}
			if err := fn(e); err != nil {
				return err
			}
		}
	}
}

// Hub fans events out to in-process subscribers. Publish never blocks:
// a subscriber whose buffer is full misses the event.
type Hub struct {
	mu     sync.RWMutex
	subs   map[*Subscription]struct{}
	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{subs: make(map[*Subscription]struct{}), logger: logger}
}

func (h *Hub) Subscribe(filter Filter, buffer int) *Subscription {
	if buffer < 1 {
		buffer = 16
	}
	ch := make(chan Event, buffer)
	s := &Subscription{C: ch, ch: ch, filter: filter, hub: h}

	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()
	return s
}

func (h *Hub) remove(s *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[s]; ok {
		delete(h.subs, s)
		close(s.ch)
	}
}

func (h *Hub) Publish(e Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.subs {
		if !s.filter.match(e) {
			continue
		}
		select {
		case s.ch <- e:
		default:
			h.logger.Warn("dropping realtime event for slow subscriber",
				zap.String("table", e.Table), zap.String("type", string(e.Type)))
		}
	}
}

func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
