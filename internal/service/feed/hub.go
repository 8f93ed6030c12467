package feed

import (
	"sync"

	"github.com/google/uuid"

	"github.com/zhouzirui/z-board/internal/model/message"
)

const subscriberBuffer = 16

// Hub fans new board entries out to live subscribers.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]chan message.Entry
	closed      bool
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{subscribers: make(map[string]chan message.Entry)}
}

// Subscribe registers a listener. The channel is closed by Unsubscribe or
// Close; after Close it is returned already closed.
func (h *Hub) Subscribe() (string, <-chan message.Entry) {
	id := uuid.NewString()
	ch := make(chan message.Entry, subscriberBuffer)

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		close(ch)
		return id, ch
	}
	h.subscribers[id] = ch
	return id, ch
}

// Unsubscribe removes a listener and closes its channel.
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.subscribers[id]; ok {
		delete(h.subscribers, id)
		close(ch)
	}
}

// Publish delivers entry to every subscriber whose buffer has room.
func (h *Hub) Publish(entry message.Entry) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subscribers {
		select {
		case ch <- entry:
		default:
			// slow listener, drop
		}
	}
}

// Close ends every subscription so streaming handlers return.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for id, ch := range h.subscribers {
		delete(h.subscribers, id)
		close(ch)
	}
}

// Len returns the number of active subscribers.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
