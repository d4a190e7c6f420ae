// Package notifier fans out change pings to connected SSE handlers.
package notifier

import "sync"

// Notifier is a broadcast hub. Listeners get an empty-struct ping when
// something changed and are expected to re-read whatever they render from.
type Notifier struct {
	mu        sync.RWMutex
	listeners map[chan struct{}]struct{}
}

// New returns an empty hub with no listeners.
func New() *Notifier {
	return &Notifier{listeners: make(map[chan struct{}]struct{})}
}

// Subscribe registers a listener. Callers must pair every Subscribe with
// an Unsubscribe or the channel leaks.
func (n *Notifier) Subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	n.mu.Lock()
	n.listeners[ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

// Unsubscribe drops a listener and closes its channel.
func (n *Notifier) Unsubscribe(ch chan struct{}) {
	n.mu.Lock()
	delete(n.listeners, ch)
	n.mu.Unlock()
	close(ch)
}

// Broadcast pings every listener without blocking. A listener whose
// buffer is already full has a ping pending and needs no second one.
func (n *Notifier) Broadcast() {
	n.mu.RLock()
	defer n.mu.RUnlock()
	for ch := range n.listeners {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
