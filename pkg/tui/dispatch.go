// ABOUTME: Routes decoded keys to the focused control and mouse reports to the control under the pointer
// ABOUTME: Unhandled events bubble up through parents to the terminal, then reach the post-listeners

package tui

import (
	"github.com/mauromedda/vtui/internal/log"
	"github.com/mauromedda/vtui/pkg/tui/key"
	"github.com/mauromedda/vtui/pkg/tui/mouse"
)

// SendKey dispatches k as if it had been typed. The focused control and
// its ancestors see the key first; when none handles it the terminal's own
// OnKey runs, which is where the interrupt key is acted on. A focused
// control outside the root's tree does not receive keys; the root does.
// The post-listener always runs. SendKey returns the control that consumed
// the key, or nil when none did.
func (t *Terminal) SendKey(k key.Key) Control {
	t.mu.Lock()
	post := t.keyPost
	t.mu.Unlock()

	target := t.Focused()
	if root := t.Root(); !isWithin(target, root) {
		target = root
	}
	handler := bubble(target, func(c Control) bool { return c.OnKey(k) })
	if handler == nil {
		t.OnKey(k)
	}
	if post != nil {
		post(k)
	}
	return handler
}

// SendMouse dispatches r to the deepest control under the pointer. It
// returns the control that consumed the report, or nil when none did.
func (t *Terminal) SendMouse(r mouse.Report) Control {
	t.mu.Lock()
	r = t.drag.Track(r)
	post := t.mousePost
	t.mu.Unlock()

	handler := bubble(t.ChildAt(r.X, r.Y), func(c Control) bool { return c.OnMouse(r) })
	if handler == nil {
		t.OnMouse(r)
	}
	if post != nil {
		post(r)
	}
	return handler
}

// OnKey is the terminal's fallback key handler. It consumes only the
// interrupt key, and only when the interrupt handler agrees to shut down.
func (t *Terminal) OnKey(k key.Key) bool {
	t.mu.Lock()
	interrupt := k == t.interruptKey
	onInterrupt := t.onInterrupt
	t.mu.Unlock()

	if interrupt && (onInterrupt == nil || onInterrupt()) {
		log.Debug("terminal: interrupt %s, shutting down", k)
		t.Shutdown()
		return true
	}
	log.Debug("terminal: unhandled key %s", k)
	return false
}

// OnMouse is the terminal's fallback mouse handler; it consumes nothing.
func (t *Terminal) OnMouse(mouse.Report) bool { return false }

// bubble offers an event to c and then to each ancestor control until one
// handles it.
func bubble(c Control, handle func(Control) bool) Control {
	for c != nil {
		if handle(c) {
			return c
		}
		next, ok := c.Core().Parent().(Control)
		if !ok {
			return nil
		}
		c = next
	}
	return nil
}
