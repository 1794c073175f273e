// ABOUTME: Terminal controller owning the device, the control tree root, focus, and the input worker
// ABOUTME: Serializes output, resize handling, and rendering behind three independent locks

package tui

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mauromedda/vtui/internal/log"
	"github.com/mauromedda/vtui/pkg/tui/ansi"
	"github.com/mauromedda/vtui/pkg/tui/input"
	"github.com/mauromedda/vtui/pkg/tui/key"
	"github.com/mauromedda/vtui/pkg/tui/mouse"
	"github.com/mauromedda/vtui/pkg/tui/terminal"
)

// Option configures a Terminal.
type Option func(*options)

type options struct {
	output       ansi.Output
	escTimeout   time.Duration
	seqTimeout   time.Duration
	interruptKey key.Key
}

// WithStream replaces the default ANSI stream over the device.
func WithStream(o ansi.Output) Option {
	return func(opts *options) { opts.output = o }
}

// WithEscapeTimeout sets how long a lone ESC waits for a follow-up byte.
func WithEscapeTimeout(d time.Duration) Option {
	return func(opts *options) { opts.escTimeout = d }
}

// WithSequenceTimeout bounds the gap between bytes inside one sequence.
func WithSequenceTimeout(d time.Duration) Option {
	return func(opts *options) { opts.seqTimeout = d }
}

// WithInterruptKey changes the key that triggers the interrupt handler.
func WithInterruptKey(k key.Key) Option {
	return func(opts *options) { opts.interruptKey = k }
}

// Terminal drives one terminal device: it owns the root control, tracks
// focus, decodes input on a worker goroutine and dispatches it.
type Terminal struct {
	dev terminal.Device
	out ansi.Output
	dec *input.Decoder

	outputMu sync.Mutex
	winchMu  sync.Mutex
	renderMu sync.Mutex

	mu           sync.Mutex
	root         Control
	focused      Control
	cols, rows   int
	mouseMode    mouse.Mode
	raw          bool
	drag         mouse.DragState
	keyPost      func(key.Key)
	mousePost    func(mouse.Report)
	onInterrupt  func() bool
	interruptKey key.Key
	unwatch      func()

	suppress atomic.Bool
	started  atomic.Bool

	ctx       context.Context
	cancel    context.CancelFunc
	group     *errgroup.Group
	closeOnce sync.Once
	closeErr  error
}

var (
	_ Parent       = (*Terminal)(nil)
	_ InputHandler = (*Terminal)(nil)
)

// New creates a Terminal over dev. The device's size is queried once; a
// failure here is returned.
func New(dev terminal.Device, opts ...Option) (*Terminal, error) {
	cfg := options{
		escTimeout:   input.DefaultEscapeTimeout,
		seqTimeout:   input.DefaultSequenceTimeout,
		interruptKey: key.Ctrl('c'),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	cols, rows, err := dev.Size()
	if err != nil {
		return nil, err
	}

	out := cfg.output
	if out == nil {
		out = ansi.NewStream(dev)
	}

	ctx, cancel := context.WithCancel(context.Background())
	group, gctx := errgroup.WithContext(ctx)

	t := &Terminal{
		dev:          dev,
		out:          out,
		cols:         cols,
		rows:         rows,
		interruptKey: cfg.interruptKey,
		onInterrupt:  func() bool { return true },
		ctx:          gctx,
		cancel:       cancel,
		group:        group,
	}
	t.dec = input.NewDecoder(dev,
		input.WithEscapeTimeout(cfg.escTimeout),
		input.WithSequenceTimeout(cfg.seqTimeout),
	)
	return t, nil
}

// Device returns the underlying device.
func (t *Terminal) Device() terminal.Device { return t.dev }

// Terminal returns t, making the Terminal a Parent.
func (t *Terminal) Terminal() *Terminal { return t }

// Cols returns the last known width in cells.
func (t *Terminal) Cols() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cols
}

// Rows returns the last known height in cells.
func (t *Terminal) Rows() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rows
}

// Position returns the full-screen rectangle.
func (t *Terminal) Position() Position {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Position{Width: t.cols, Height: t.rows}
}

// Cbreak puts the device in cbreak mode.
func (t *Terminal) Cbreak() error {
	if err := t.dev.Cbreak(); err != nil {
		return err
	}
	t.mu.Lock()
	t.raw = false
	t.mu.Unlock()
	return nil
}

// Raw puts the device in raw mode.
func (t *Terminal) Raw() error {
	if err := t.dev.Raw(); err != nil {
		return err
	}
	t.mu.Lock()
	t.raw = true
	t.mu.Unlock()
	return nil
}

// IsRaw reports whether Raw was the last mode set.
func (t *Terminal) IsRaw() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.raw
}

// Restore puts back the device attributes saved at the first mode change.
func (t *Terminal) Restore() error {
	if err := t.dev.Restore(); err != nil {
		return err
	}
	t.mu.Lock()
	t.raw = false
	t.mu.Unlock()
	return nil
}

// SetMouseMode switches mouse reporting, turning the previous mode off first.
func (t *Terminal) SetMouseMode(mode mouse.Mode) {
	t.mu.Lock()
	prev := t.mouseMode
	t.mouseMode = mode
	t.mu.Unlock()

	if prev == mode {
		return
	}
	t.outputMu.Lock()
	defer t.outputMu.Unlock()
	_, _ = t.out.WriteString(prev.Disable())
	_, _ = t.out.WriteString(mode.Enable())
	if err := t.out.Flush(); err != nil {
		log.Warn("terminal: mouse mode %v: %v", mode, err)
	}
}

// MouseMode returns the current mouse reporting mode.
func (t *Terminal) MouseMode() mouse.Mode {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mouseMode
}

// SetSuppressOutput turns all drawing and output into no-ops while true.
func (t *Terminal) SetSuppressOutput(suppress bool) { t.suppress.Store(suppress) }

// SuppressOutput reports whether output is suppressed.
func (t *Terminal) SuppressOutput() bool { return t.suppress.Load() }

// SetKeyPostlistener installs fn to observe every dispatched key after
// handlers ran, whether or not one consumed it.
func (t *Terminal) SetKeyPostlistener(fn func(key.Key)) {
	t.mu.Lock()
	t.keyPost = fn
	t.mu.Unlock()
}

// SetMousePostlistener installs fn to observe every dispatched mouse report.
func (t *Terminal) SetMousePostlistener(fn func(mouse.Report)) {
	t.mu.Lock()
	t.mousePost = fn
	t.mu.Unlock()
}

// SetInterruptHandler installs fn to run when the interrupt key reaches the
// terminal unhandled by every control. When fn returns true the terminal
// shuts down. A nil fn always shuts down.
func (t *Terminal) SetInterruptHandler(fn func() bool) {
	t.mu.Lock()
	t.onInterrupt = fn
	t.mu.Unlock()
}

// Dragging reports whether a mouse button is held, and which.
func (t *Terminal) Dragging() (bool, mouse.Button) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.drag.Dragging, t.drag.Button
}

// Root returns the root control, or nil.
func (t *Terminal) Root() Control {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.root
}

// SetRoot makes c the root control. The previous root is detached from the
// terminal when detachOld is true. Focus moves to c unless it is already
// inside c's subtree. SetRoot does not draw; call Redraw.
func (t *Terminal) SetRoot(c Control, detachOld bool) {
	t.mu.Lock()
	old := t.root
	t.root = c
	t.mu.Unlock()

	if old != nil && old != c && detachOld {
		t.releaseFocus(old)
		old.Core().detach()
	}
	if c != nil {
		if p := c.Core().Parent(); p != nil && p != Parent(t) {
			p.RemoveChild(c)
		}
		c.Core().setParent(t)
	}

	t.mu.Lock()
	if c == nil || t.focused == nil || !isWithin(t.focused, c) {
		t.focused = c
	}
	t.mu.Unlock()
}

// AddChild records t as c's parent without making c the root. Such orphan
// controls can draw but receive no input until reachable from the root.
// It always reports false because the terminal keeps no child list.
func (t *Terminal) AddChild(c Control) bool {
	if c == nil {
		return false
	}
	if p := c.Core().Parent(); p != nil && p != Parent(t) {
		p.RemoveChild(c)
	}
	c.Core().setParent(t)
	return false
}

// RemoveChild detaches c if t is its parent, clearing the root if c is it.
func (t *Terminal) RemoveChild(c Control) bool {
	if c == nil || c.Core().Parent() != Parent(t) {
		return false
	}
	t.releaseFocus(c)
	t.mu.Lock()
	if t.root == c {
		t.root = nil
	}
	t.mu.Unlock()
	c.Core().detach()
	return true
}

// Children returns the root as the terminal's only child.
func (t *Terminal) Children() []Control {
	if root := t.Root(); root != nil {
		return []Control{root}
	}
	return nil
}

// ChildAt hit-tests the tree from the root. Containers are never returned;
// a root container with no matching child yields nil.
func (t *Terminal) ChildAt(x, y int) Control {
	root := t.Root()
	if root == nil || !root.Core().Position().Contains(x, y) {
		return nil
	}
	if p, ok := root.(Parent); ok {
		return p.ChildAt(x, y)
	}
	return root
}

// Focus makes c the focused control. c must belong to t.
func (t *Terminal) Focus(c Control) error {
	if c != nil && c.Core().Terminal() != t {
		log.Error("terminal: cannot focus %s: %v", c.Core().ID(), ErrForeignControl)
		return ErrForeignControl
	}
	t.mu.Lock()
	t.focused = c
	t.mu.Unlock()
	return nil
}

// Focused returns the focused control. With nothing focused the root takes
// focus; it is nil only when there is no root.
func (t *Terminal) Focused() Control {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.focused == nil {
		t.focused = t.root
	}
	return t.focused
}

// HasFocus reports whether c is the focused control.
func (t *Terminal) HasFocus(c Control) bool {
	return c != nil && t.Focused() == c
}

// JumpToFocused moves the cursor to the focused control.
func (t *Terminal) JumpToFocused() {
	f := t.Focused()
	if f == nil {
		return
	}
	if fj, ok := f.(FocusJumper); ok {
		fj.JumpFocus()
	} else {
		f.Core().Jump()
	}
	_ = t.Flush()
}

// releaseFocus drops focus held by c or any of its descendants.
func (t *Terminal) releaseFocus(c Control) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.focused != nil && isWithin(t.focused, c) {
		t.focused = nil
	}
}

// isWithin reports whether c is ancestor or one of its descendants.
func isWithin(c, ancestor Control) bool {
	for c != nil {
		if c == ancestor {
			return true
		}
		next, ok := c.Core().Parent().(Control)
		if !ok {
			return false
		}
		c = next
	}
	return false
}
