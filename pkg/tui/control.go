// ABOUTME: Base carries the state every control shares: parent, terminal, rectangle, name, margins
// ABOUTME: Concrete controls embed *Base and inherit drawing helpers, focus, and margin scoping

package tui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/mauromedda/vtui/pkg/tui/ansi"
	"github.com/mauromedda/vtui/pkg/tui/key"
	"github.com/mauromedda/vtui/pkg/tui/mouse"
)

// Base implements the shared half of Control. The zero value is not usable;
// create one with NewBase.
type Base struct {
	self Control

	mu          sync.RWMutex
	name        string
	parent      Parent
	term        *Terminal
	pos         Position
	inMargins   bool
	ignoreIndex bool
}

// NewBase returns the Base for self. Constructors assign it to their
// embedded field and then call Attach:
//
//	l := &Label{}
//	l.Base = tui.NewBase(l)
//	tui.Attach(parent, l)
func NewBase(self Control) *Base {
	return &Base{self: self}
}

// Attach adds c to parent. A nil parent leaves c detached.
func Attach(parent Parent, c Control) {
	if parent != nil {
		parent.AddChild(c)
	}
}

// Core returns b.
func (b *Base) Core() *Base { return b }

// Name returns the name set with SetName.
func (b *Base) Name() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.name
}

// SetName labels the control for debugging output.
func (b *Base) SetName(name string) {
	b.mu.Lock()
	b.name = name
	b.mu.Unlock()
}

// ID identifies the control by type and name, e.g. "component.Label:title".
func (b *Base) ID() string {
	id := strings.TrimPrefix(fmt.Sprintf("%T", b.self), "*")
	if name := b.Name(); name != "" {
		id += ":" + name
	}
	return id
}

// Parent returns the owning parent, or nil.
func (b *Base) Parent() Parent {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.parent
}

// Terminal returns the terminal the control belongs to, or nil.
func (b *Base) Terminal() *Terminal {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.term
}

// Position returns the control's rectangle.
func (b *Base) Position() Position {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.pos
}

// Resize records pos. Controls with children override it to lay them out.
func (b *Base) Resize(pos Position) {
	b.mu.Lock()
	b.pos = pos
	b.mu.Unlock()
}

// Move keeps the size and changes the origin.
func (b *Base) Move(left, top int) {
	pos := b.Position()
	pos.Left, pos.Top = left, top
	b.self.Resize(pos)
}

// Focus makes the control the focused control of its terminal.
func (b *Base) Focus() {
	if t := b.Terminal(); t != nil {
		_ = t.Focus(b.self)
	}
}

// HasFocus reports whether the control is its terminal's focused control.
func (b *Base) HasFocus() bool {
	t := b.Terminal()
	return t != nil && t.Focused() == b.self
}

// OnKey ignores the key.
func (b *Base) OnKey(key.Key) bool { return false }

// OnMouse ignores the report.
func (b *Base) OnMouse(mouse.Report) bool { return false }

// CanDraw reports whether drawing would reach the screen: the control has a
// terminal that is not suppressing output and a non-empty rectangle.
func (b *Base) CanDraw() bool {
	t := b.Terminal()
	return t != nil && !t.SuppressOutput() && !b.Position().Empty()
}

// Jump moves the cursor to the control's top-left cell.
func (b *Base) Jump() {
	if t := b.Terminal(); t != nil {
		pos := b.Position()
		t.Jump(pos.Left, pos.Top)
	}
}

// ClearRect blanks the rectangle with the current background color.
func (b *Base) ClearRect() {
	if !b.CanDraw() {
		return
	}
	pos := b.Position()
	blank := strings.Repeat(" ", pos.Width)
	b.Terminal().WithOutput(func(o ansi.Output) {
		for row := 0; row < pos.Height; row++ {
			o.Jump(pos.Left, pos.Top+row)
			o.WriteString(blank)
		}
	})
}

// Flush flushes the terminal output.
func (b *Base) Flush() {
	if t := b.Terminal(); t != nil {
		_ = t.Flush()
	}
}

// Refresh redraws just this control under the render lock and flushes.
// Use it to update a control from outside a draw pass.
func (b *Base) Refresh() { b.RefreshWith(nil) }

// RefreshWith is Refresh for callers that may already hold g.
func (b *Base) RefreshWith(g *RenderGuard) {
	t := b.Terminal()
	if t == nil {
		return
	}
	defer t.Enter(g).Unlock()
	b.self.Draw()
	_ = t.Flush()
}

// AtLeft reports whether the control touches the left edge of the screen.
func (b *Base) AtLeft() bool { return b.Position().Left == 0 }

// AtRight reports whether the control touches the right edge of the screen.
func (b *Base) AtRight() bool {
	t := b.Terminal()
	if t == nil {
		return false
	}
	pos := b.Position()
	return pos.Left+pos.Width == t.Cols()
}

// SetMargins confines scrolling to the control's rectangle.
func (b *Base) SetMargins() {
	t := b.Terminal()
	if t == nil {
		return
	}
	t.Margins(b.Position())
	b.mu.Lock()
	b.inMargins = true
	b.mu.Unlock()
}

// SetHMargins sets only the left and right margins to the control's columns.
func (b *Base) SetHMargins() {
	t := b.Terminal()
	if t == nil {
		return
	}
	pos := b.Position()
	t.EnableHMargins()
	t.HMargins(pos.Left, pos.Right())
	b.mu.Lock()
	b.inMargins = true
	b.mu.Unlock()
}

// ResetMargins restores full-screen margins.
func (b *Base) ResetMargins() {
	t := b.Terminal()
	if t == nil {
		return
	}
	t.ResetMargins()
	b.mu.Lock()
	b.inMargins = false
	b.mu.Unlock()
}

// InMargins reports whether the control currently has margins set.
func (b *Base) InMargins() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.inMargins
}

// TryMargins runs fn with margins set to the control's rectangle. If margins
// are already set, fn runs inside them and TryMargins reports false.
// Otherwise the margins are reset on every exit path, including panics.
func (b *Base) TryMargins(fn func()) bool {
	if b.InMargins() {
		fn()
		return false
	}
	b.SetMargins()
	defer b.ResetMargins()
	fn()
	return true
}

// SetIgnoreIndex excludes the control from its siblings' Index numbering.
func (b *Base) SetIgnoreIndex(ignore bool) {
	b.mu.Lock()
	b.ignoreIndex = ignore
	b.mu.Unlock()
}

// IgnoreIndex reports whether the control is excluded from Index numbering.
func (b *Base) IgnoreIndex() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.ignoreIndex
}

// Index returns the control's position among its parent's children, not
// counting siblings that ignore indexing. It returns -1 without a parent.
func (b *Base) Index() int {
	p := b.Parent()
	if p == nil {
		return -1
	}
	idx := 0
	for _, ch := range p.Children() {
		if ch == b.self {
			return idx
		}
		if !ch.Core().IgnoreIndex() {
			idx++
		}
	}
	return -1
}

// Close removes the control from its parent, releasing focus held inside
// its subtree.
func (b *Base) Close() {
	if p := b.Parent(); p != nil {
		p.RemoveChild(b.self)
	}
}

// setParent records p and adopts p's terminal throughout the subtree.
func (b *Base) setParent(p Parent) {
	b.mu.Lock()
	b.parent = p
	b.mu.Unlock()

	var t *Terminal
	if p != nil {
		t = p.Terminal()
	}
	b.adopt(t)
}

func (b *Base) adopt(t *Terminal) {
	b.mu.Lock()
	b.term = t
	b.mu.Unlock()

	if p, ok := b.self.(Parent); ok {
		for _, ch := range p.Children() {
			ch.Core().adopt(t)
		}
	}
}

func (b *Base) detach() {
	b.setParent(nil)
}
