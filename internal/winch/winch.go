// ABOUTME: Process-wide SIGWINCH fan-out to registered resize listeners
// ABOUTME: One signal subscription is shared by all listeners and released with the last one

//go:build unix

package winch

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/mauromedda/vtui/internal/eventbus"
)

// Listener is notified after the controlling terminal changes size.
type Listener interface {
	HandleResize()
}

// Registry owns one SIGWINCH subscription and delivers each signal to its
// listeners in registration order.
type Registry struct {
	mu    sync.Mutex
	bus   *eventbus.Bus[os.Signal]
	sigCh chan os.Signal
	stop  chan struct{}
}

// NewRegistry creates an empty registry. The signal is only subscribed while
// at least one listener is registered.
func NewRegistry() *Registry {
	return &Registry{bus: eventbus.New[os.Signal]()}
}

var std = NewRegistry()

// Register adds l to the process-wide registry.
func Register(l Listener) (unregister func()) { return std.Register(l) }

// Count returns the number of listeners in the process-wide registry.
func Count() int { return std.Count() }

// Register adds l and returns a function that removes it again.
func (r *Registry) Register(l Listener) (unregister func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	unsub := r.bus.Subscribe(func(os.Signal) { l.HandleResize() })
	if r.stop == nil {
		r.start()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			unsub()
			r.mu.Lock()
			defer r.mu.Unlock()
			if r.bus.Count() == 0 && r.stop != nil {
				r.halt()
			}
		})
	}
}

// Count returns the number of registered listeners.
func (r *Registry) Count() int { return r.bus.Count() }

// Listening reports whether the signal is currently subscribed.
func (r *Registry) Listening() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stop != nil
}

// Notify delivers a resize to every listener as if SIGWINCH arrived and
// returns how many were called.
func (r *Registry) Notify() int { return r.bus.Publish(syscall.SIGWINCH) }

func (r *Registry) start() {
	r.sigCh = make(chan os.Signal, 1)
	r.stop = make(chan struct{})
	signal.Notify(r.sigCh, syscall.SIGWINCH)
	go r.loop(r.sigCh, r.stop)
}

func (r *Registry) halt() {
	signal.Stop(r.sigCh)
	close(r.stop)
	r.sigCh, r.stop = nil, nil
}

func (r *Registry) loop(sigCh <-chan os.Signal, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case sig := <-sigCh:
			r.bus.Publish(sig)
		}
	}
}
