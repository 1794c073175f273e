// ABOUTME: Box lays its children out in a row or column, splitting its rectangle between them
// ABOUTME: Children may claim a fixed number of cells; the rest share what remains evenly

package component

import (
	"sync"

	"github.com/mauromedda/vtui/pkg/tui"
)

// Orientation is the axis a Box stacks children along.
type Orientation uint8

const (
	// Vertical stacks children top to bottom.
	Vertical Orientation = iota
	// Horizontal places children left to right.
	Horizontal
)

// Box is a container that tiles its children.
type Box struct {
	*tui.ContainerBase

	orient Orientation
	mu     sync.Mutex
	fixed  map[tui.Control]int
}

// NewBox creates a Box under parent.
func NewBox(parent tui.Parent, orient Orientation) *Box {
	b := &Box{orient: orient, fixed: make(map[tui.Control]int)}
	b.ContainerBase = tui.NewContainerBase(b)
	tui.Attach(parent, b)
	return b
}

// Orientation returns the stacking axis.
func (b *Box) Orientation() Orientation { return b.orient }

// SetFixed gives c exactly cells rows (vertical) or columns (horizontal).
// Zero returns c to sharing the remaining space.
func (b *Box) SetFixed(c tui.Control, cells int) {
	b.mu.Lock()
	if cells > 0 {
		b.fixed[c] = cells
	} else {
		delete(b.fixed, c)
	}
	b.mu.Unlock()
	b.layout()
}

// AddChild adds c and lays the children out again.
func (b *Box) AddChild(c tui.Control) bool {
	if !b.ContainerBase.AddChild(c) {
		return false
	}
	b.layout()
	return true
}

// RemoveChild removes c and lays the remaining children out again.
func (b *Box) RemoveChild(c tui.Control) bool {
	if !b.ContainerBase.RemoveChild(c) {
		return false
	}
	b.mu.Lock()
	delete(b.fixed, c)
	b.mu.Unlock()
	b.layout()
	return true
}

// Resize sets the box's rectangle and tiles the children inside it.
func (b *Box) Resize(pos tui.Position) {
	b.ContainerBase.Resize(pos)
	b.layout()
}

func (b *Box) layout() {
	pos := b.Position()
	children := b.Children()
	if len(children) == 0 {
		return
	}

	total := pos.Height
	if b.orient == Horizontal {
		total = pos.Width
	}

	b.mu.Lock()
	sizes := make([]int, len(children))
	isFixed := make([]bool, len(children))
	remaining := total
	flexible := 0
	for i, c := range children {
		if n, ok := b.fixed[c]; ok {
			sizes[i] = min(n, max(remaining, 0))
			isFixed[i] = true
			remaining -= sizes[i]
		} else {
			flexible++
		}
	}
	b.mu.Unlock()

	if flexible > 0 && remaining > 0 {
		share, extra := remaining/flexible, remaining%flexible
		for i := range children {
			if isFixed[i] {
				continue
			}
			sizes[i] = share
			if extra > 0 {
				sizes[i]++
				extra--
			}
		}
	}

	offset := 0
	for i, c := range children {
		r := tui.Position{Left: pos.Left, Top: pos.Top + offset, Width: pos.Width, Height: sizes[i]}
		if b.orient == Horizontal {
			r = tui.Position{Left: pos.Left + offset, Top: pos.Top, Width: sizes[i], Height: pos.Height}
		}
		c.Resize(r)
		offset += sizes[i]
	}
}
