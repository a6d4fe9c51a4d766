// Package broadcast pushes order events to in-process subscribers, such as the
// server-sent events stream that keeps the admin, driver and tracking views fresh.
package broadcast

import (
	"context"
	"errors"
	"sync"

	"containerops/internal/core/domain/model/order"
	"containerops/internal/core/ports"

	"go.uber.org/zap"
)

// DefaultBuffer is the per-subscriber channel size NewHub uses for a non-positive buffer.
const DefaultBuffer = 64

// ErrHubIsClosed is returned by Publish and Subscribe after Close.
var ErrHubIsClosed = errors.New("broadcast hub is closed")

// Hub fans order events out to subscriber channels. Publish never blocks: a
// subscriber whose buffer is full misses the event and is expected to re-read
// the views it shows.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[uint64]chan order.Event
	nextID      uint64
	buffer      int
	closed      bool

	logger *zap.Logger
}

var _ ports.EventPublisher = (*Hub)(nil)

// NewHub creates a hub whose subscribers each buffer up to buffer events.
//
// Parameters:
//   - buffer: per-subscriber channel size, DefaultBuffer when zero or negative
//   - logger: receives a debug line per event dropped for a lagging subscriber
//
// Example:
//
//	hub := broadcast.NewHub(broadcast.DefaultBuffer, logger)
//	defer hub.Close()
//
//	events, cancel, err := hub.Subscribe()
//	if err != nil {
//	    return err
//	}
//	defer cancel()
func NewHub(buffer int, logger *zap.Logger) *Hub {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Hub{
		subscribers: make(map[uint64]chan order.Event),
		buffer:      buffer,
		logger:      logger.Named("broadcast"),
	}
}

// Subscribe registers a subscriber. The channel is closed by cancel or by Close;
// cancel may be called more than once.
func (h *Hub) Subscribe() (<-chan order.Event, func(), error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, nil, ErrHubIsClosed
	}

	id := h.nextID
	h.nextID++
	ch := make(chan order.Event, h.buffer)
	h.subscribers[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() { h.unsubscribe(id) })
	}
	return ch, cancel, nil
}

func (h *Hub) unsubscribe(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.subscribers[id]; ok {
		delete(h.subscribers, id)
		close(ch)
	}
}

// Publish delivers the event to every subscriber with room in its buffer. It never
// blocks and only fails with ErrHubIsClosed.
func (h *Hub) Publish(_ context.Context, event order.Event) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return ErrHubIsClosed
	}

	for id, ch := range h.subscribers {
		select {
		case ch <- event:
		default:
			h.logger.Debug("subscriber is lagging, event dropped",
				zap.Uint64("subscriber", id),
				zap.String("order_id", event.OrderID),
				zap.String("event", string(event.Type)),
			)
		}
	}
	return nil
}

// Subscribers reports the number of live subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Close ends every subscription. Later Publish and Subscribe calls fail with ErrHubIsClosed.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subscribers {
		delete(h.subscribers, id)
		close(ch)
	}
}
