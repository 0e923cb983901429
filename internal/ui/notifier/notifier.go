// Package notifier fans seed-reload events out to open SSE streams.
package notifier

import (
	"sync"
	"time"
)

// Event tells listeners that the results source changed.
type Event struct {
	Reason string
	At     time.Time
	// Rows is the number of rows loaded, or -1 when unknown.
	Rows int
}

// Notifier broadcasts events to all subscribed listeners.
// Each listener buffers one event; a slow listener sees the latest
// event it had room for and re-queries on receipt.
type Notifier struct {
	mu        sync.RWMutex
	listeners map[chan Event]struct{}
	last      Event
	now       func() time.Time
}

// New creates a new Notifier instance.
func New() *Notifier {
	return &Notifier{
		listeners: make(map[chan Event]struct{}),
		now:       time.Now,
	}
}

// Subscribe returns a channel that receives events.
// The caller must call Unsubscribe when done to prevent goroutine leaks.
func (n *Notifier) Subscribe() chan Event {
	ch := make(chan Event, 1)
	n.mu.Lock()
	n.listeners[ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

// Unsubscribe removes a listener channel and closes it.
func (n *Notifier) Unsubscribe(ch chan Event) {
	n.mu.Lock()
	delete(n.listeners, ch)
	n.mu.Unlock()
	close(ch)
}

// Broadcast stamps ev and sends it to all listeners.
// Non-blocking: if a listener's channel is full, the event is skipped.
func (n *Notifier) Broadcast(ev Event) {
	if ev.At.IsZero() {
		ev.At = n.now()
	}

	n.mu.Lock()
	n.last = ev
	n.mu.Unlock()

	n.mu.RLock()
	defer n.mu.RUnlock()
	for ch := range n.listeners {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Last returns the most recent event, or the zero Event if none was sent.
func (n *Notifier) Last() Event {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.last
}

// Len returns the number of subscribed listeners.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.listeners)
}
