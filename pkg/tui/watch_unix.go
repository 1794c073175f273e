// ABOUTME: Subscribes a Terminal to SIGWINCH through the process-wide winch registry

//go:build unix

package tui

import "github.com/mauromedda/vtui/internal/winch"

// WatchSize subscribes to window-size changes. Close unsubscribes.
func (t *Terminal) WatchSize() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.unwatch != nil {
		return
	}
	t.unwatch = winch.Register(t)
}
