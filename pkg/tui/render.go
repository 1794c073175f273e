// ABOUTME: Re-entrant render lock and full-screen redraw
// ABOUTME: A RenderGuard proves the lock is held so nested draws re-enter instead of deadlocking

package tui

import "sync"

// RenderGuard is held while drawing. Code that already holds a guard
// re-enters with Relock instead of calling LockRender again.
type RenderGuard struct {
	t     *Terminal
	mu    sync.Mutex
	depth int
}

// LockRender acquires the render lock, blocking until it is free.
func (t *Terminal) LockRender() *RenderGuard {
	t.renderMu.Lock()
	return &RenderGuard{t: t, depth: 1}
}

// Relock re-enters the lock g already holds.
func (g *RenderGuard) Relock() *RenderGuard {
	g.mu.Lock()
	g.depth++
	g.mu.Unlock()
	return g
}

// Unlock leaves one level; the lock is released when the outermost level
// unlocks. Extra calls are ignored.
func (g *RenderGuard) Unlock() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.depth == 0 {
		return
	}
	g.depth--
	if g.depth == 0 {
		g.t.renderMu.Unlock()
	}
}

// Held reports whether g still holds the render lock.
func (g *RenderGuard) Held() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.depth > 0
}

// Enter returns a guard for the render lock. A guard the caller still
// holds is re-entered; otherwise the lock is acquired. Unlock the result.
func (t *Terminal) Enter(g *RenderGuard) *RenderGuard {
	if g != nil && g.t == t && g.Held() {
		return g.Relock()
	}
	return t.LockRender()
}

// Redraw lays the root out over the whole screen and draws it.
func (t *Terminal) Redraw() { t.RedrawWith(nil) }

// RedrawWith is Redraw for callers that may already hold g.
func (t *Terminal) RedrawWith(g *RenderGuard) {
	defer t.Enter(g).Unlock()
	t.redrawLocked()
}

// Draw draws the root at its current position.
func (t *Terminal) Draw() { t.DrawWith(nil) }

// DrawWith is Draw for callers that may already hold g.
func (t *Terminal) DrawWith(g *RenderGuard) {
	defer t.Enter(g).Unlock()
	if root := t.Root(); root != nil {
		root.Draw()
	}
	_ = t.Flush()
}

func (t *Terminal) redrawLocked() {
	root := t.Root()
	if root == nil {
		return
	}
	root.Resize(t.Position())
	root.Draw()
	_ = t.Flush()
}
