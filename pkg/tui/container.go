// ABOUTME: ContainerBase is an ordered collection of child Controls embedded by container controls
// ABOUTME: Thread-safe via RWMutex for concurrent hit testing vs mutation

package tui

import "sync"

// ContainerBase implements Parent on top of Base. Later children are drawn
// after, and hit-tested before, earlier ones.
type ContainerBase struct {
	*Base

	owner    Container
	cmu      sync.RWMutex
	children []Control
}

// NewContainerBase returns the ContainerBase for self.
func NewContainerBase(self Container) *ContainerBase {
	return &ContainerBase{Base: NewBase(self), owner: self}
}

// AddChild appends ch, moving it from its previous parent if it had one.
func (c *ContainerBase) AddChild(ch Control) bool {
	if ch == nil || ch == Control(c.owner) {
		return false
	}

	c.cmu.RLock()
	for _, existing := range c.children {
		if existing == ch {
			c.cmu.RUnlock()
			return false
		}
	}
	c.cmu.RUnlock()

	if old := ch.Core().Parent(); old != nil && old != Parent(c.owner) {
		old.RemoveChild(ch)
	}

	c.cmu.Lock()
	c.children = append(c.children, ch)
	c.cmu.Unlock()

	ch.Core().setParent(c.owner)
	return true
}

// RemoveChild detaches ch and its subtree from the container and the
// terminal. Focus held inside the subtree is released.
func (c *ContainerBase) RemoveChild(ch Control) bool {
	c.cmu.Lock()
	found := false
	for i, existing := range c.children {
		if existing == ch {
			c.children = append(c.children[:i], c.children[i+1:]...)
			found = true
			break
		}
	}
	c.cmu.Unlock()
	if !found {
		return false
	}

	if t := c.Terminal(); t != nil {
		t.releaseFocus(ch)
	}
	ch.Core().detach()
	return true
}

// Clear removes all children.
func (c *ContainerBase) Clear() {
	for _, ch := range c.Children() {
		c.RemoveChild(ch)
	}
}

// Children returns a snapshot of the current children.
func (c *ContainerBase) Children() []Control {
	c.cmu.RLock()
	defer c.cmu.RUnlock()
	out := make([]Control, len(c.children))
	copy(out, c.children)
	return out
}

// ChildAt returns the deepest non-container descendant containing (x, y).
// Containers are searched through but never returned themselves.
func (c *ContainerBase) ChildAt(x, y int) Control {
	children := c.Children()
	for i := len(children) - 1; i >= 0; i-- {
		ch := children[i]
		if !ch.Core().Position().Contains(x, y) {
			continue
		}
		if p, ok := ch.(Parent); ok {
			if hit := p.ChildAt(x, y); hit != nil {
				return hit
			}
			continue
		}
		return ch
	}
	return nil
}

// Redraw clears the rectangle and draws each child in order.
func (c *ContainerBase) Redraw() {
	if !c.CanDraw() {
		return
	}
	c.ClearRect()
	for _, ch := range c.Children() {
		ch.Draw()
	}
}

// Draw is Redraw unless the container overrides it.
func (c *ContainerBase) Draw() { c.Redraw() }
