// ABOUTME: WatchSize stub for platforms without SIGWINCH

//go:build !unix

package tui

import "github.com/mauromedda/vtui/internal/log"

// WatchSize is a no-op on this platform; call HandleResize yourself.
func (t *Terminal) WatchSize() {
	log.Debug("terminal: window-size signals not supported on this platform")
}
