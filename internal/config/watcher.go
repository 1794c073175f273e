// ABOUTME: Polling file watcher used to hot-reload the theme file
// ABOUTME: Compares mtimes each tick; Run blocks until its context is cancelled

package config

import (
	"context"
	"os"
	"sync"
	"time"
)

// DefaultWatchInterval is the polling period used when NewWatcher gets 0.
const DefaultWatchInterval = 2 * time.Second

// Watcher reports files whose mtime changed, appeared, or vanished.
type Watcher struct {
	interval time.Duration
	onChange func(path string)

	mu     sync.Mutex
	paths  []string
	mtimes map[string]time.Time
}

// NewWatcher creates a watcher that calls onChange with each changed path.
func NewWatcher(interval time.Duration, onChange func(path string)) *Watcher {
	if interval <= 0 {
		interval = DefaultWatchInterval
	}
	return &Watcher{
		interval: interval,
		onChange: onChange,
		mtimes:   make(map[string]time.Time),
	}
}

// Add starts watching path. Its current state is the baseline.
func (w *Watcher) Add(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, p := range w.paths {
		if p == path {
			return
		}
	}
	w.paths = append(w.paths, path)
	if info, err := os.Stat(path); err == nil {
		w.mtimes[path] = info.ModTime()
	}
}

// Check compares every path against the last snapshot, records the new
// state, and returns the paths that changed.
func (w *Watcher) Check() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	var changed []string
	for _, path := range w.paths {
		prev, existed := w.mtimes[path]
		info, err := os.Stat(path)
		if err != nil {
			if existed {
				delete(w.mtimes, path)
				changed = append(changed, path)
			}
			continue
		}
		if !existed || !info.ModTime().Equal(prev) {
			w.mtimes[path] = info.ModTime()
			changed = append(changed, path)
		}
	}
	return changed
}

// Run polls until ctx is done. It always returns nil.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			for _, path := range w.Check() {
				w.onChange(path)
			}
		}
	}
}
