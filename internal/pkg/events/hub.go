// Package events carries change notifications from the core to the
// presentation layer. Core mutations publish an Event; subscribers (the SSE
// endpoint, tests) receive it and redraw. The core never renders anything
// itself.
package events

import (
	"sync"
)

// Event describes a single change to the record store or the sync engine.
type Event struct {
	Topic   string      `json:"topic"`  // employees, attendance, leaves, deductions, sync
	Action  string      `json:"action"` // added, updated, deleted, renamed, drained, abandoned, ...
	Payload interface{} `json:"payload,omitempty"`
}

// Hub manages subscribers and event broadcasting.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[chan Event]struct{}),
	}
}

// Subscribe registers a new subscriber and returns the event channel and a
// cleanup function.
func (h *Hub) Subscribe() (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 16)
	h.subscribers[ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subscribers[ch]; ok {
			delete(h.subscribers, ch)
			close(ch)
		}
	}

	return ch, cleanup
}

// Publish sends an event to every subscriber.
func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subscribers {
		select {
		case ch <- event:
		default:
			// Skip if channel is full (non-blocking to prevent deadlock)
		}
	}
}

// SubscriberCount returns the number of active subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
