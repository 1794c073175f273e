// ABOUTME: Single-line text input with a kill ring, undo, and horizontal scrolling
// ABOUTME: Keys resolve through a keybindings.Manager; submit hands the text to a callback

package component

import (
	"strings"
	"sync"

	"github.com/mauromedda/vtui/pkg/tui"
	"github.com/mauromedda/vtui/pkg/tui/ansi"
	"github.com/mauromedda/vtui/pkg/tui/internal/edit"
	"github.com/mauromedda/vtui/pkg/tui/key"
	"github.com/mauromedda/vtui/pkg/tui/keybindings"
	"github.com/mauromedda/vtui/pkg/tui/theme"
	"github.com/mauromedda/vtui/pkg/tui/width"
)

// Input edits one line of text. It draws on the first row of its rectangle.
type Input struct {
	*tui.Base

	mu          sync.Mutex
	line        *edit.Line
	keys        *keybindings.Manager
	scroll      int
	placeholder string
	onSubmit    func(string)
}

var _ tui.FocusJumper = (*Input)(nil)

// NewInput creates an empty Input under parent.
func NewInput(parent tui.Parent) *Input {
	in := &Input{line: edit.NewLine(), keys: keybindings.Default()}
	in.Base = tui.NewBase(in)
	tui.Attach(parent, in)
	return in
}

// Text returns the current text.
func (in *Input) Text() string {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.line.String()
}

// Cursor returns the cursor offset in runes.
func (in *Input) Cursor() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.line.Cursor()
}

// SetText replaces the text and moves the cursor to the end.
func (in *Input) SetText(s string) {
	in.mu.Lock()
	in.line.Set(width.Normalize(s))
	in.mu.Unlock()
}

// SetPlaceholder sets the hint shown while the input is empty.
func (in *Input) SetPlaceholder(s string) {
	in.mu.Lock()
	in.placeholder = s
	in.mu.Unlock()
}

// SetKeymap replaces the default bindings.
func (in *Input) SetKeymap(m *keybindings.Manager) {
	in.mu.Lock()
	in.keys = m
	in.mu.Unlock()
}

// OnSubmit installs fn to receive the text when enter is pressed. The input
// is cleared afterwards.
func (in *Input) OnSubmit(fn func(string)) {
	in.mu.Lock()
	in.onSubmit = fn
	in.mu.Unlock()
}

// OnKey edits the line. Keys it has no binding for bubble to the parent.
func (in *Input) OnKey(k key.Key) bool {
	in.mu.Lock()
	handled, submit := in.apply(k)
	var text string
	if submit != nil {
		text = in.line.String()
		in.line.Set("")
	}
	in.mu.Unlock()

	if !handled {
		return false
	}
	if submit != nil {
		submit(text)
	}
	in.Refresh()
	if t := in.Terminal(); t != nil && in.HasFocus() {
		t.JumpToFocused()
	}
	return true
}

// apply runs the binding for k. It returns the submit callback when k is
// bound to submit and one is installed.
func (in *Input) apply(k key.Key) (handled bool, submit func(string)) {
	l := in.line
	if k.Type == key.KeyRune && k.Mods&^key.ModShift == 0 {
		l.Insert(k.Rune)
		return true, nil
	}
	switch in.keys.ActionForKey(k) {
	case keybindings.ActionLeft:
		l.Move(-1)
	case keybindings.ActionRight:
		l.Move(1)
	case keybindings.ActionHome:
		l.Home()
	case keybindings.ActionEnd:
		l.End()
	case keybindings.ActionDeleteBack:
		l.Backspace()
	case keybindings.ActionDeleteForward:
		l.Delete()
	case keybindings.ActionKillLine:
		l.KillToEnd()
	case keybindings.ActionKillWord:
		l.KillWordBackward()
	case keybindings.ActionYank:
		l.Yank()
	case keybindings.ActionUndo:
		l.Undo()
	case keybindings.ActionRedo:
		l.Redo()
	case keybindings.ActionSubmit:
		if in.onSubmit == nil {
			return false, nil
		}
		return true, in.onSubmit
	default:
		return false, nil
	}
	return true, nil
}

// view returns the visible slice of text and the cursor's column in it,
// scrolling horizontally so the cursor stays inside cols.
func (in *Input) view(cols int) (string, int) {
	in.mu.Lock()
	defer in.mu.Unlock()

	runes := in.line.Runes()
	cursor := in.line.Cursor()
	if cursor < in.scroll {
		in.scroll = cursor
	}
	for in.scroll < cursor && cells(runes[in.scroll:cursor]) >= cols {
		in.scroll++
	}

	var b strings.Builder
	used := 0
	for _, r := range runes[in.scroll:] {
		w := width.RuneCells(r)
		if used+w > cols {
			break
		}
		b.WriteRune(r)
		used += w
	}
	return b.String(), cells(runes[in.scroll:cursor])
}

func cells(rs []rune) int {
	n := 0
	for _, r := range rs {
		n += width.RuneCells(r)
	}
	return n
}

// Draw paints the text, or the placeholder when empty.
func (in *Input) Draw() {
	if !in.CanDraw() {
		return
	}
	pos := in.Position()
	text, _ := in.view(pos.Width)

	palette := theme.Current().Palette
	role := palette.Text
	if in.HasFocus() {
		role = palette.Focus
	}
	in.mu.Lock()
	if text == "" && in.placeholder != "" {
		text = in.placeholder
		role = palette.Muted
	}
	in.mu.Unlock()

	in.Terminal().WithOutput(func(o ansi.Output) {
		o.Jump(pos.Left, pos.Top)
		if !role.IsPlain() {
			o.SetForeground(role.Fg)
			o.SetBackground(role.Bg)
		}
		o.WriteString(width.Fit(text, pos.Width))
		if !role.IsPlain() {
			o.ResetColors()
		}
	})
}

// JumpFocus puts the cursor at the insertion point.
func (in *Input) JumpFocus() {
	t := in.Terminal()
	if t == nil {
		return
	}
	pos := in.Position()
	_, col := in.view(pos.Width)
	t.Jump(pos.Left+col, pos.Top)
}
