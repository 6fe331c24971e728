package events

import (
	"sync"

	"github.com/rs/zerolog"
)

// Handler receives published event data. Handlers run synchronously on the
// publisher's goroutine, in subscription order.
type Handler func(data EventData)

// Bus is a best-effort, same-process broadcast channel. A subscriber that
// panics is the publisher's problem; there is no delivery guarantee beyond
// the synchronous fan-out.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[EventType][]Handler
	log         zerolog.Logger
}

// NewBus creates a new event bus
func NewBus(log zerolog.Logger) *Bus {
	return &Bus{
		subscribers: make(map[EventType][]Handler),
		log:         log.With().Str("component", "events").Logger(),
	}
}

// Subscribe registers a handler for one event type
func (b *Bus) Subscribe(t EventType, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[t] = append(b.subscribers[t], h)
}

// Publish fans the event out to every handler subscribed to its type
func (b *Bus) Publish(data EventData) {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.subscribers[data.EventType()]...)
	b.mu.RUnlock()

	b.log.Debug().
		Str("event", string(data.EventType())).
		Int("subscribers", len(handlers)).
		Msg("Publishing event")

	for _, h := range handlers {
		h(data)
	}
}
