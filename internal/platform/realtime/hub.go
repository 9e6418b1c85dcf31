// Package realtime provides the best-effort event publisher the coverage
// workflow broadcasts on. Delivery is never guaranteed and never blocks the
// caller; a slow subscriber drops events rather than stalling a publish.
package realtime

import (
	"sync"
	"time"
)

type Event struct {
	Channel string    `json:"channel"`
	Name    string    `json:"event"`
	Payload any       `json:"payload"`
	SentAt  time.Time `json:"sentAt"`
}

type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: map[string]map[chan Event]struct{}{}}
}

func (h *Hub) Publish(channel, event string, payload any) {
	evt := Event{Channel: channel, Name: event, Payload: payload, SentAt: time.Now().UTC()}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs[channel] {
		select {
		case ch <- evt:
		default:
		}
	}
}

func (h *Hub) Subscribe(channel string) (<-chan Event, func()) {
	ch := make(chan Event, 16)

	h.mu.Lock()
	if h.subs[channel] == nil {
		h.subs[channel] = map[chan Event]struct{}{}
	}
	h.subs[channel][ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if set, ok := h.subs[channel]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(h.subs, channel)
			}
		}
		h.mu.Unlock()
	}
	return ch, cancel
}
