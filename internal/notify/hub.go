package notify

import (
	"context"
	"sync"
	"time"
)

// Hub keeps the notifications currently on screen. Each one is removed
// once its duration elapses.
type Hub struct {
	mu      sync.Mutex
	active  []*entry
	closed  bool
	dismiss func(Notification)
}

type entry struct {
	n     Notification
	timer *time.Timer
}

// NewHub returns an empty Hub. onDismiss, if non-nil, is called after a
// notification expires, outside the hub lock.
func NewHub(onDismiss func(Notification)) *Hub {
	return &Hub{dismiss: onDismiss}
}

// Show adds n to the active set and schedules its removal.
func (h *Hub) Show(ctx context.Context, n Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrClosed
	}
	e := &entry{n: n}
	e.timer = time.AfterFunc(n.Duration, func() { h.expire(e) })
	h.active = append(h.active, e)
	return nil
}

func (h *Hub) expire(e *entry) {
	h.mu.Lock()
	removed := h.remove(e)
	h.mu.Unlock()
	if removed && h.dismiss != nil {
		h.dismiss(e.n)
	}
}

// remove must be called with h.mu held.
func (h *Hub) remove(e *entry) bool {
	for i, x := range h.active {
		if x == e {
			h.active = append(h.active[:i], h.active[i+1:]...)
			return true
		}
	}
	return false
}

// Dismiss removes the notification with the given ID before it expires.
func (h *Hub) Dismiss(id string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, e := range h.active {
		if e.n.ID == id {
			e.timer.Stop()
			return h.remove(e)
		}
	}
	return false
}

// Active returns the notifications not yet dismissed, oldest first.
func (h *Hub) Active() []Notification {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Notification, 0, len(h.active))
	for _, e := range h.active {
		out = append(out, e.n)
	}
	return out
}

// Close stops all pending timers and rejects further notifications.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, e := range h.active {
		e.timer.Stop()
	}
	h.active = nil
	h.closed = true
}
