// ABOUTME: Core control-tree interfaces: InputHandler, Control, Parent, Container
// ABOUTME: Defines the contract every drawable, focusable element in a terminal tree fulfils

package tui

import (
	"errors"
	"fmt"

	"github.com/mauromedda/vtui/pkg/tui/key"
	"github.com/mauromedda/vtui/pkg/tui/mouse"
)

// ErrForeignControl is returned when focusing a control owned by another terminal.
var ErrForeignControl = errors.New("control belongs to a different terminal")

// InputHandler consumes input events. Returning true stops propagation.
type InputHandler interface {
	OnKey(k key.Key) bool
	OnMouse(r mouse.Report) bool
}

// Control is a rectangular element of the tree. Implementations embed *Base
// (or *ContainerBase) and provide Draw.
type Control interface {
	InputHandler
	// Draw paints the control inside its rectangle. It runs with the render
	// lock held and must not call Terminal.Redraw or Terminal.Draw.
	Draw()
	// Resize sets the rectangle and lays out any children.
	Resize(pos Position)
	// Focus makes the control the terminal's focused control.
	Focus()
	// Core returns the embedded Base.
	Core() *Base
}

// Parent owns child controls. The Terminal is a Parent for its root and for
// orphan controls that have no other parent yet.
type Parent interface {
	Terminal() *Terminal
	// AddChild adopts c, detaching it from any previous parent. It reports
	// whether c was added to the child list.
	AddChild(c Control) bool
	// RemoveChild detaches c and its subtree. It reports whether c was a child.
	RemoveChild(c Control) bool
	Children() []Control
	// ChildAt returns the deepest non-container control containing the
	// absolute cell (x, y), or nil.
	ChildAt(x, y int) Control
}

// Container is a Control that is also a Parent.
type Container interface {
	Control
	Parent
}

// FocusJumper is implemented by controls that put the cursor somewhere other
// than their top-left cell when the terminal jumps to the focused control.
type FocusJumper interface {
	JumpFocus()
}

// Position is a control's rectangle in absolute 0-based cells.
type Position struct {
	Left, Top     int
	Width, Height int
}

// Contains reports whether the cell (x, y) lies inside p.
func (p Position) Contains(x, y int) bool {
	return x >= p.Left && x < p.Left+p.Width && y >= p.Top && y < p.Top+p.Height
}

// Right returns the last column inside p.
func (p Position) Right() int { return p.Left + p.Width - 1 }

// Bottom returns the last row inside p.
func (p Position) Bottom() int { return p.Top + p.Height - 1 }

// Empty reports whether p covers no cells.
func (p Position) Empty() bool { return p.Width <= 0 || p.Height <= 0 }

func (p Position) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", p.Width, p.Height, p.Left, p.Top)
}
