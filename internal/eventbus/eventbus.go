// ABOUTME: Typed event bus with ordered subscriber delivery for decoupled components
// ABOUTME: Handlers run in subscription order; unsubscribe is idempotent and goroutine-safe

package eventbus

import "sync"

// Handler is a callback function for events.
type Handler[T any] func(T)

type subscription[T any] struct {
	id      uint64
	handler Handler[T]
}

// Bus is a typed event bus that delivers events to registered handlers.
type Bus[T any] struct {
	mu     sync.RWMutex
	subs   []subscription[T]
	nextID uint64
}

// New creates a new event bus.
func New[T any]() *Bus[T] {
	return &Bus[T]{}
}

// Subscribe registers a handler and returns an unsubscribe function.
// Calling the returned function more than once has no further effect.
func (b *Bus[T]) Subscribe(handler Handler[T]) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs = append(b.subs, subscription[T]{id: id, handler: handler})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Bus[T]) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all registered handlers in subscription order
// and returns how many were called. Handlers may subscribe or unsubscribe
// during delivery; those changes apply to the next Publish.
func (b *Bus[T]) Publish(event T) int {
	b.mu.RLock()
	// Snapshot handlers to avoid holding lock during callbacks
	snapshot := make([]Handler[T], len(b.subs))
	for i, s := range b.subs {
		snapshot[i] = s.handler
	}
	b.mu.RUnlock()

	for _, h := range snapshot {
		h(event)
	}
	return len(snapshot)
}

// Count returns the number of registered handlers.
func (b *Bus[T]) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
