// ABOUTME: Tests for the terminal controller: dispatch, focus, hit testing, resize, render lock, teardown
// ABOUTME: Runs against terminal.Virtual so no real TTY is needed

package tui

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mauromedda/vtui/pkg/tui/key"
	"github.com/mauromedda/vtui/pkg/tui/mouse"
	"github.com/mauromedda/vtui/pkg/tui/terminal"
)

type leaf struct {
	*Base

	consume bool
	mu      sync.Mutex
	draws   int
	keys    chan key.Key
	mice    chan mouse.Report
}

func newLeaf(parent Parent, name string, consume bool) *leaf {
	l := &leaf{
		consume: consume,
		keys:    make(chan key.Key, 16),
		mice:    make(chan mouse.Report, 16),
	}
	l.Base = NewBase(l)
	l.SetName(name)
	Attach(parent, l)
	return l
}

func (l *leaf) Draw() {
	l.mu.Lock()
	l.draws++
	l.mu.Unlock()
}

func (l *leaf) Draws() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.draws
}

func (l *leaf) OnKey(k key.Key) bool {
	l.keys <- k
	return l.consume
}

func (l *leaf) OnMouse(r mouse.Report) bool {
	l.mice <- r
	return l.consume
}

type box struct {
	*ContainerBase

	consume bool
	mu      sync.Mutex
	draws   int
}

func newBox(parent Parent, name string) *box {
	b := &box{}
	b.ContainerBase = NewContainerBase(b)
	b.SetName(name)
	Attach(parent, b)
	return b
}

func (b *box) Draw() {
	b.mu.Lock()
	b.draws++
	b.mu.Unlock()
	b.ContainerBase.Draw()
}

func (b *box) Draws() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.draws
}

func (b *box) OnKey(key.Key) bool { return b.consume }

func newTestTerminal(t *testing.T, cols, rows int) (*Terminal, *terminal.Virtual) {
	t.Helper()
	v := terminal.NewVirtual(cols, rows)
	term, err := New(v, WithEscapeTimeout(10*time.Millisecond))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = term.Close() })
	return term, v
}

func waitKey(t *testing.T, ch <-chan key.Key) key.Key {
	t.Helper()
	select {
	case k := <-ch:
		return k
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for key")
	}
	return key.Key{}
}

func waitMouse(t *testing.T, ch <-chan mouse.Report) mouse.Report {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for mouse report")
	}
	return mouse.Report{}
}

func TestNew_SizeError(t *testing.T) {
	t.Parallel()

	v := terminal.NewVirtual(80, 24)
	v.SetSizeError(errors.New("boom"))
	if _, err := New(v); err == nil {
		t.Fatal("New() should fail when the size query fails")
	}
}

func TestTerminal_InputWorkerDeliversToFocused(t *testing.T) {
	t.Parallel()

	term, v := newTestTerminal(t, 80, 24)
	root := newBox(nil, "root")
	a := newLeaf(root, "a", true)
	term.SetRoot(root, true)
	a.Focus()

	term.StartInput()
	v.Feed("\x1b[105;5u")

	if got := waitKey(t, a.keys); got != key.Ctrl('i') {
		t.Errorf("focused control got %s, want ctrl+i", got)
	}
}

func TestTerminal_InputWorkerMouseDrag(t *testing.T) {
	t.Parallel()

	term, v := newTestTerminal(t, 80, 24)
	root := newBox(nil, "root")
	a := newLeaf(root, "a", true)
	term.SetRoot(root, true)
	term.Redraw()
	a.Resize(Position{Width: 80, Height: 24})

	term.StartInput()
	v.Feed("\x1b[<0;10;5M\x1b[<32;12;5M\x1b[<0;12;5m")

	want := []mouse.Report{
		{Action: mouse.ActionDown, Button: mouse.ButtonLeft, X: 9, Y: 4},
		{Action: mouse.ActionDrag, Button: mouse.ButtonLeft, X: 11, Y: 4},
		{Action: mouse.ActionUp, Button: mouse.ButtonLeft, X: 11, Y: 4},
	}
	for i, w := range want {
		if got := waitMouse(t, a.mice); got != w {
			t.Errorf("report %d = %v, want %v", i, got, w)
		}
	}
}

func TestTerminal_InputWorkerStopsOnEOF(t *testing.T) {
	t.Parallel()

	term, v := newTestTerminal(t, 80, 24)
	term.StartInput()
	term.StartInput()
	v.CloseInput()

	select {
	case <-term.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop on EOF")
	}
	if err := term.Join(); err != nil {
		t.Errorf("Join() = %v, want nil", err)
	}
}

func TestTerminal_SendMouseTracksDrag(t *testing.T) {
	t.Parallel()

	term, _ := newTestTerminal(t, 80, 24)
	a := newLeaf(nil, "a", true)
	term.SetRoot(a, true)
	term.Redraw()

	steps := []struct {
		in       mouse.Report
		wantDrag bool
		wantBtn  mouse.Button
		deliver  mouse.Report
	}{
		{
			in:       mouse.Report{Action: mouse.ActionDown, Button: mouse.ButtonLeft, X: 9, Y: 4},
			wantDrag: true,
			wantBtn:  mouse.ButtonLeft,
			deliver:  mouse.Report{Action: mouse.ActionDown, Button: mouse.ButtonLeft, X: 9, Y: 4},
		},
		{
			in:       mouse.Report{Action: mouse.ActionMove, X: 11, Y: 4},
			wantDrag: true,
			wantBtn:  mouse.ButtonLeft,
			deliver:  mouse.Report{Action: mouse.ActionDrag, Button: mouse.ButtonLeft, X: 11, Y: 4},
		},
		{
			in:       mouse.Report{Action: mouse.ActionUp, X: 11, Y: 4},
			wantDrag: false,
			wantBtn:  mouse.ButtonNone,
			deliver:  mouse.Report{Action: mouse.ActionUp, Button: mouse.ButtonLeft, X: 11, Y: 4},
		},
	}
	for i, s := range steps {
		if h := term.SendMouse(s.in); h != Control(a) {
			t.Fatalf("step %d: handler = %v, want a", i, h)
		}
		if got := <-a.mice; got != s.deliver {
			t.Errorf("step %d: delivered %v, want %v", i, got, s.deliver)
		}
		drag, btn := term.Dragging()
		if drag != s.wantDrag || btn != s.wantBtn {
			t.Errorf("step %d: Dragging() = %v, %v; want %v, %v", i, drag, btn, s.wantDrag, s.wantBtn)
		}
	}
}

func TestTerminal_ChildAt(t *testing.T) {
	t.Parallel()

	term, _ := newTestTerminal(t, 80, 24)
	root := newBox(nil, "root")
	a := newLeaf(root, "a", false)
	b := newLeaf(root, "b", false)
	term.SetRoot(root, true)
	term.Redraw()
	a.Resize(Position{Left: 0, Top: 0, Width: 40, Height: 24})
	b.Resize(Position{Left: 40, Top: 0, Width: 40, Height: 24})

	tests := []struct {
		name string
		x, y int
		want Control
	}{
		{"left half", 10, 10, a},
		{"right half", 50, 10, b},
		{"boundary", 40, 0, b},
		{"outside", 80, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := term.ChildAt(tt.x, tt.y); got != tt.want {
				t.Errorf("ChildAt(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestContainer_ChildAtPrefersLaterAndSkipsContainers(t *testing.T) {
	t.Parallel()

	term, _ := newTestTerminal(t, 80, 24)
	root := newBox(nil, "root")
	under := newLeaf(root, "under", false)
	inner := newBox(root, "inner")
	term.SetRoot(root, true)
	term.Redraw()
	under.Resize(Position{Width: 20, Height: 10})
	inner.Resize(Position{Width: 20, Height: 10})

	// An empty container on top is searched through, not returned.
	if got := root.ChildAt(5, 5); got != Control(under) {
		t.Errorf("ChildAt over empty container = %v, want under", got)
	}

	over := newLeaf(inner, "over", false)
	over.Resize(Position{Width: 5, Height: 5})
	if got := root.ChildAt(2, 2); got != Control(over) {
		t.Errorf("ChildAt = %v, want over", got)
	}
	if got := root.ChildAt(7, 7); got != Control(under) {
		t.Errorf("ChildAt = %v, want under", got)
	}
}

func TestTerminal_HandleResize(t *testing.T) {
	t.Parallel()

	term, v := newTestTerminal(t, 80, 24)
	root := newBox(nil, "root")
	term.SetRoot(root, true)

	v.SetSize(100, 30)
	term.HandleResize()

	if got, want := root.Position(), (Position{Width: 100, Height: 30}); got != want {
		t.Errorf("root position = %v, want %v", got, want)
	}
	if got := root.Draws(); got != 1 {
		t.Errorf("root drawn %d times, want 1", got)
	}
	if term.Cols() != 100 || term.Rows() != 30 {
		t.Errorf("size = %dx%d, want 100x30", term.Cols(), term.Rows())
	}
}

func TestTerminal_HandleResizeToZero(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		cols, rows int
	}{
		{"zero rows", 80, 0},
		{"zero cols", 0, 24},
		{"both zero", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			term, v := newTestTerminal(t, 80, 24)
			root := newLeaf(nil, "root", false)
			term.SetRoot(root, true)
			term.Redraw()

			v.SetSize(tt.cols, tt.rows)
			term.HandleResize()

			if term.Cols() != tt.cols || term.Rows() != tt.rows {
				t.Errorf("size = %dx%d, want %dx%d", term.Cols(), term.Rows(), tt.cols, tt.rows)
			}
			if !root.Position().Empty() {
				t.Errorf("root position = %v, want empty", root.Position())
			}
			if root.CanDraw() {
				t.Error("CanDraw() = true at zero size")
			}

			v.SetSize(80, 24)
			term.HandleResize()
			if !root.CanDraw() {
				t.Error("CanDraw() = false after growing back")
			}
		})
	}
}

func TestTerminal_HandleResizeSizeError(t *testing.T) {
	t.Parallel()

	term, v := newTestTerminal(t, 80, 24)
	root := newBox(nil, "root")
	term.SetRoot(root, true)

	v.SetSizeError(errors.New("gone"))
	term.HandleResize()

	if root.Draws() != 0 {
		t.Error("root should not be drawn when the size query fails")
	}
	if term.Cols() != 80 || term.Rows() != 24 {
		t.Errorf("size changed to %dx%d after failed query", term.Cols(), term.Rows())
	}
}

func TestTerminal_Interrupt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		consume      bool
		handler      func() bool
		wantShutdown bool
	}{
		{"default shuts down", false, nil, true},
		{"handler true", false, func() bool { return true }, true},
		{"handler false", false, func() bool { return false }, false},
		{"control handles it first", true, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			term, _ := newTestTerminal(t, 80, 24)
			a := newLeaf(nil, "a", tt.consume)
			term.SetRoot(a, true)
			if tt.handler != nil {
				term.SetInterruptHandler(tt.handler)
			}
			posted := 0
			term.SetKeyPostlistener(func(key.Key) { posted++ })

			term.SendKey(key.Ctrl('c'))

			select {
			case <-term.Done():
				if !tt.wantShutdown {
					t.Error("terminal shut down, want running")
				}
			default:
				if tt.wantShutdown {
					t.Error("terminal still running, want shut down")
				}
			}
			if got := <-a.keys; got != key.Ctrl('c') {
				t.Errorf("control got %s, want ctrl+c", got)
			}
			if posted != 1 {
				t.Errorf("post-listener ran %d times, want 1", posted)
			}
		})
	}
}

func TestTerminal_CustomInterruptKey(t *testing.T) {
	t.Parallel()

	v := terminal.NewVirtual(80, 24)
	term, err := New(v, WithInterruptKey(key.Ctrl('q')))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer term.Close()

	a := newLeaf(nil, "a", false)
	term.SetRoot(a, true)

	term.SendKey(key.Ctrl('c'))
	select {
	case <-term.Done():
		t.Fatal("ctrl+c should not interrupt when ctrl+q is the interrupt key")
	default:
	}

	term.SendKey(key.Ctrl('q'))
	select {
	case <-term.Done():
	default:
		t.Error("ctrl+q did not interrupt")
	}
}

func TestTerminal_KeyBubbling(t *testing.T) {
	t.Parallel()

	term, _ := newTestTerminal(t, 80, 24)
	root := newBox(nil, "root")
	mid := newBox(root, "mid")
	a := newLeaf(mid, "a", false)
	term.SetRoot(root, true)
	a.Focus()

	var posted []key.Key
	term.SetKeyPostlistener(func(k key.Key) { posted = append(posted, k) })

	if h := term.SendKey(key.Rune('x')); h != nil {
		t.Errorf("handler = %v, want nil", h)
	}
	<-a.keys

	root.consume = true
	if h := term.SendKey(key.Rune('y')); h != Control(root) {
		t.Errorf("handler = %v, want root", h)
	}
	<-a.keys

	mid.consume = true
	if h := term.SendKey(key.Rune('z')); h != Control(mid) {
		t.Errorf("handler = %v, want mid", h)
	}
	<-a.keys

	if len(posted) != 3 {
		t.Errorf("post-listener saw %d keys, want 3", len(posted))
	}
}

func TestTerminal_OrphanGetsNoKeys(t *testing.T) {
	t.Parallel()

	term, _ := newTestTerminal(t, 80, 24)
	root := newLeaf(nil, "root", true)
	term.SetRoot(root, true)
	orphan := newLeaf(term, "orphan", true)
	if err := term.Focus(orphan); err != nil {
		t.Fatalf("Focus: %v", err)
	}

	if h := term.SendKey(key.Rune('x')); h != Control(root) {
		t.Errorf("handler = %v, want root", h)
	}
	if len(orphan.keys) != 0 {
		t.Errorf("orphan received %d keys", len(orphan.keys))
	}
}

func TestTerminal_MousePostlistener(t *testing.T) {
	t.Parallel()

	term, _ := newTestTerminal(t, 80, 24)
	root := newBox(nil, "root")
	term.SetRoot(root, true)
	term.Redraw()

	var posted []mouse.Report
	term.SetMousePostlistener(func(r mouse.Report) { posted = append(posted, r) })

	r := mouse.Report{Action: mouse.ActionScrollUp, X: 3, Y: 3}
	if h := term.SendMouse(r); h != nil {
		t.Errorf("handler = %v, want nil over empty container", h)
	}
	if len(posted) != 1 || posted[0] != r {
		t.Errorf("post-listener saw %v, want [%v]", posted, r)
	}
}

func TestTerminal_Focus(t *testing.T) {
	t.Parallel()

	term, _ := newTestTerminal(t, 80, 24)
	other, _ := newTestTerminal(t, 80, 24)

	if term.Focused() != nil {
		t.Error("Focused() without a root should be nil")
	}

	root := newBox(nil, "root")
	a := newLeaf(root, "a", false)
	term.SetRoot(root, true)
	if term.Focused() != Control(root) {
		t.Error("root should take focus when set")
	}

	a.Focus()
	if !a.HasFocus() {
		t.Error("a should have focus")
	}

	foreign := newLeaf(nil, "foreign", false)
	other.SetRoot(foreign, true)
	if err := term.Focus(foreign); !errors.Is(err, ErrForeignControl) {
		t.Errorf("Focus(foreign) = %v, want ErrForeignControl", err)
	}
	if term.Focused() != Control(a) {
		t.Error("failed Focus should not change focus")
	}

	detached := newLeaf(nil, "detached", false)
	if err := term.Focus(detached); !errors.Is(err, ErrForeignControl) {
		t.Errorf("Focus(detached) = %v, want ErrForeignControl", err)
	}
}

func TestTerminal_RemoveSubtreeReleasesFocus(t *testing.T) {
	t.Parallel()

	term, _ := newTestTerminal(t, 80, 24)
	root := newBox(nil, "root")
	sub := newBox(root, "sub")
	a := newLeaf(sub, "a", false)
	b := newLeaf(root, "b", false)
	term.SetRoot(root, true)

	b.Focus()
	sub.Close()
	if term.Focused() != Control(b) {
		t.Error("removing a subtree without focus should keep focus")
	}

	sub2 := newBox(root, "sub2")
	c := newLeaf(sub2, "c", false)
	c.Focus()
	if !root.RemoveChild(sub2) {
		t.Fatal("RemoveChild(sub2) = false")
	}
	if term.Focused() != Control(root) {
		t.Errorf("Focused() = %v, want root after focused subtree removed", term.Focused())
	}
	if a.Terminal() != nil || c.Terminal() != nil {
		t.Error("removed controls should be detached from the terminal")
	}
	if root.RemoveChild(sub2) {
		t.Error("second RemoveChild should report false")
	}
}

func TestContainer_AddChild(t *testing.T) {
	t.Parallel()

	term, _ := newTestTerminal(t, 80, 24)
	root := newBox(nil, "root")
	left := newBox(root, "left")
	right := newBox(root, "right")
	term.SetRoot(root, true)

	a := newLeaf(left, "a", false)
	if a.Terminal() != term {
		t.Error("child should adopt the parent's terminal")
	}
	if left.AddChild(a) {
		t.Error("duplicate AddChild should report false")
	}
	if left.AddChild(left) {
		t.Error("adding a container to itself should report false")
	}

	if !right.AddChild(a) {
		t.Fatal("moving a to right failed")
	}
	if len(left.Children()) != 0 || len(right.Children()) != 1 {
		t.Errorf("children: left=%d right=%d, want 0 and 1", len(left.Children()), len(right.Children()))
	}
	if a.Parent() != Parent(right) {
		t.Error("a's parent should be right")
	}

	orphan := newLeaf(term, "orphan", false)
	if orphan.Terminal() != term || orphan.Parent() != Parent(term) {
		t.Error("orphan should belong to the terminal")
	}
	if term.ChildAt(0, 0) == Control(orphan) {
		t.Error("orphans are not hit-tested")
	}
}

func TestTerminal_SetRoot(t *testing.T) {
	t.Parallel()

	term, _ := newTestTerminal(t, 80, 24)
	first := newBox(nil, "first")
	term.SetRoot(first, true)

	second := newBox(nil, "second")
	term.SetRoot(second, true)
	if first.Terminal() != nil {
		t.Error("old root should be detached")
	}
	if term.Focused() != Control(second) {
		t.Error("focus should move to the new root")
	}

	third := newBox(nil, "third")
	term.SetRoot(third, false)
	if second.Terminal() != term {
		t.Error("old root kept when detachOld is false")
	}
	if !term.RemoveChild(third) || term.Root() != nil {
		t.Error("RemoveChild(root) should clear the root")
	}
}

func TestBase_Index(t *testing.T) {
	t.Parallel()

	root := newBox(nil, "root")
	a := newLeaf(root, "a", false)
	skip := newLeaf(root, "skip", false)
	skip.SetIgnoreIndex(true)
	c := newLeaf(root, "c", false)

	if a.Index() != 0 || c.Index() != 1 {
		t.Errorf("Index() = %d, %d; want 0, 1", a.Index(), c.Index())
	}
	if got := newLeaf(nil, "lone", false).Index(); got != -1 {
		t.Errorf("detached Index() = %d, want -1", got)
	}
}

func TestBase_TryMargins(t *testing.T) {
	t.Parallel()

	term, v := newTestTerminal(t, 80, 24)
	a := newLeaf(term, "a", false)
	a.Resize(Position{Left: 2, Top: 3, Width: 10, Height: 5})

	var inner bool
	outer := a.TryMargins(func() {
		if !a.InMargins() {
			t.Error("InMargins() should be true inside TryMargins")
		}
		inner = a.TryMargins(func() { term.VScroll(-1) })
	})
	_ = term.Flush()

	if !outer || inner {
		t.Errorf("TryMargins = %v (outer), %v (inner); want true, false", outer, inner)
	}
	if a.InMargins() {
		t.Error("margins should be reset after TryMargins")
	}
	want := "\x1b[?69h\x1b[3;12s\x1b[4;8r" + "\x1b[S" + "\x1b[;s\x1b[?69l\x1b[;r"
	if got := v.Output(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestBase_TryMarginsResetsOnPanic(t *testing.T) {
	t.Parallel()

	term, _ := newTestTerminal(t, 80, 24)
	a := newLeaf(term, "a", false)
	a.Resize(Position{Width: 10, Height: 5})

	func() {
		defer func() { _ = recover() }()
		a.TryMargins(func() { panic("draw failed") })
	}()
	if a.InMargins() {
		t.Error("margins should be reset after a panic")
	}
}

func TestBase_CanDraw(t *testing.T) {
	t.Parallel()

	term, v := newTestTerminal(t, 0, 0)
	root := newBox(nil, "root")
	a := newLeaf(root, "a", false)
	term.SetRoot(root, true)

	term.Redraw()
	if root.CanDraw() {
		t.Error("zero-size root should not be drawable")
	}
	if a.Draws() != 0 {
		t.Error("children of an undrawable container should not be drawn")
	}
	if got := v.Output(); got != "" {
		t.Errorf("output = %q, want nothing", got)
	}

	detached := newLeaf(nil, "d", false)
	detached.Resize(Position{Width: 5, Height: 5})
	if detached.CanDraw() {
		t.Error("a control without a terminal cannot draw")
	}
}

func TestTerminal_SuppressOutput(t *testing.T) {
	t.Parallel()

	term, v := newTestTerminal(t, 80, 24)
	a := newLeaf(term, "a", false)
	a.Resize(Position{Width: 5, Height: 1})

	term.SetSuppressOutput(true)
	if a.CanDraw() {
		t.Error("CanDraw() should be false while output is suppressed")
	}
	_, _ = term.WriteString("hidden")
	a.ClearRect()
	_ = term.Flush()
	if got := v.Output(); got != "" {
		t.Errorf("output = %q, want nothing while suppressed", got)
	}

	term.SetSuppressOutput(false)
	a.ClearRect()
	_ = term.Flush()
	if got, want := v.Output(), "\x1b[1;1H     "; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRenderGuard_Reentrant(t *testing.T) {
	t.Parallel()

	term, _ := newTestTerminal(t, 80, 24)
	root := newBox(nil, "root")
	term.SetRoot(root, true)

	g := term.LockRender()
	g.Relock()
	term.RedrawWith(g)
	g.Unlock()
	if !g.Held() {
		t.Fatal("guard released before the outermost Unlock")
	}
	g.Unlock()
	if g.Held() {
		t.Fatal("guard still held after the outermost Unlock")
	}
	g.Unlock()

	acquired := make(chan struct{})
	go func() {
		term.LockRender().Unlock()
		close(acquired)
	}()
	select {
	case <-acquired:
	case <-time.After(2 * time.Second):
		t.Fatal("render lock not released")
	}
	if root.Draws() != 1 {
		t.Errorf("root drawn %d times, want 1", root.Draws())
	}
}

func TestBase_RefreshDrawsOnlyItself(t *testing.T) {
	t.Parallel()

	term, _ := newTestTerminal(t, 80, 24)
	root := newBox(nil, "root")
	a := newLeaf(root, "a", false)
	term.SetRoot(root, true)

	a.Refresh()
	if a.Draws() != 1 || root.Draws() != 0 {
		t.Errorf("draws: a=%d root=%d, want 1 and 0", a.Draws(), root.Draws())
	}
}

func TestTerminal_MouseModeAndClose(t *testing.T) {
	t.Parallel()

	v := terminal.NewVirtual(80, 24)
	term, err := New(v)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := term.Raw(); err != nil {
		t.Fatalf("Raw: %v", err)
	}
	if !term.IsRaw() {
		t.Error("IsRaw() = false after Raw")
	}

	term.SetMouseMode(mouse.ModeMotion)
	if got, want := v.Output(), "\x1b[?1002h\x1b[?1006h"; got != want {
		t.Errorf("enable output = %q, want %q", got, want)
	}
	v.Reset()
	term.SetMouseMode(mouse.ModeNormal)
	if got, want := v.Output(), "\x1b[?1002l\x1b[?1006l\x1b[?1000h\x1b[?1006h"; got != want {
		t.Errorf("switch output = %q, want %q", got, want)
	}
	v.Reset()

	term.StartInput()
	if err := term.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := term.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if !strings.HasPrefix(v.Output(), "\x1b[?1000l\x1b[?1006l") {
		t.Errorf("Close output = %q, want mouse disable first", v.Output())
	}
	if v.RestoreCount() != 1 || v.Mode() != terminal.ModeCooked {
		t.Errorf("RestoreCount() = %d, Mode() = %v; want 1, cooked", v.RestoreCount(), v.Mode())
	}
	if !v.Closed() {
		t.Error("device not closed")
	}
	if term.MouseMode() != mouse.ModeNone {
		t.Errorf("MouseMode() = %v after Close, want none", term.MouseMode())
	}
}

func TestTerminal_DebugTree(t *testing.T) {
	t.Parallel()

	term, _ := newTestTerminal(t, 80, 24)
	var sb strings.Builder
	if err := term.DebugTree(&sb); err != nil || sb.String() != "(no root)\n" {
		t.Errorf("DebugTree without root = %q, %v", sb.String(), err)
	}

	root := newBox(nil, "root")
	a := newLeaf(root, "a", false)
	term.SetRoot(root, true)
	term.Redraw()
	a.Resize(Position{Left: 1, Top: 2, Width: 10, Height: 1})
	a.Focus()

	sb.Reset()
	if err := term.DebugTree(&sb); err != nil {
		t.Fatalf("DebugTree: %v", err)
	}
	want := "tui.box:root 80x24+0+0\n  tui.leaf:a 10x1+1+2 *\n"
	if sb.String() != want {
		t.Errorf("DebugTree =\n%s\nwant\n%s", sb.String(), want)
	}
}

func TestPosition(t *testing.T) {
	t.Parallel()

	p := Position{Left: 2, Top: 3, Width: 4, Height: 5}
	tests := []struct {
		x, y int
		want bool
	}{
		{2, 3, true},
		{5, 7, true},
		{6, 3, false},
		{2, 8, false},
		{1, 3, false},
	}
	for _, tt := range tests {
		if got := p.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
	if p.Right() != 5 || p.Bottom() != 7 {
		t.Errorf("Right, Bottom = %d, %d; want 5, 7", p.Right(), p.Bottom())
	}
	if !(Position{Width: 3}).Empty() {
		t.Error("zero height should be empty")
	}
}
