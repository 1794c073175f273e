// ABOUTME: LogView shows the tail of an append-only list of messages, newest at the bottom
// ABOUTME: Appends scroll the region with DECSTBM/DECSLRM margins instead of repainting it

package component

import (
	"sync"

	"github.com/mauromedda/vtui/pkg/tui"
	"github.com/mauromedda/vtui/pkg/tui/ansi"
	"github.com/mauromedda/vtui/pkg/tui/key"
	"github.com/mauromedda/vtui/pkg/tui/keybindings"
	"github.com/mauromedda/vtui/pkg/tui/mouse"
	"github.com/mauromedda/vtui/pkg/tui/width"
)

// DefaultLogLimit is how many entries a LogView keeps when created with 0.
const DefaultLogLimit = 1000

// LogView is a scrolling message log. The mouse wheel and page keys scroll
// back through history; a new entry jumps back to the bottom.
type LogView struct {
	*tui.Base

	mu      sync.Mutex
	entries []string
	limit   int
	back    int
	keys    *keybindings.Manager
}

// NewLogView creates a LogView under parent keeping at most limit entries.
func NewLogView(parent tui.Parent, limit int) *LogView {
	if limit <= 0 {
		limit = DefaultLogLimit
	}
	v := &LogView{limit: limit, keys: keybindings.Default()}
	v.Base = tui.NewBase(v)
	tui.Attach(parent, v)
	return v
}

// Len returns the number of entries kept.
func (v *LogView) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.entries)
}

// ScrollBack returns how many rows the view is scrolled up from the bottom.
func (v *LogView) ScrollBack() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.back
}

// Append adds an entry and shows it. When the view is at the bottom the
// existing rows are scrolled up in place and only the new rows are written.
func (v *LogView) Append(text string) { v.AppendWith(nil, text) }

// AppendWith is Append for callers that may already hold g.
func (v *LogView) AppendWith(g *tui.RenderGuard, text string) {
	text = width.Normalize(text)

	v.mu.Lock()
	v.entries = append(v.entries, text)
	if over := len(v.entries) - v.limit; over > 0 {
		v.entries = append(v.entries[:0], v.entries[over:]...)
	}
	wasBack := v.back > 0
	v.back = 0
	v.mu.Unlock()

	if !v.CanDraw() {
		return
	}
	pos := v.Position()
	rows := width.Wrap(text, pos.Width)
	if wasBack || len(rows) >= pos.Height {
		v.RefreshWith(g)
		return
	}

	t := v.Terminal()
	defer t.Enter(g).Unlock()
	v.TryMargins(func() {
		t.VScroll(-len(rows))
		t.WithOutput(func(o ansi.Output) {
			top := pos.Bottom() - len(rows) + 1
			for i, row := range rows {
				o.Jump(pos.Left, top+i)
				o.WriteString(width.Fit(row, pos.Width))
			}
		})
	})
	_ = t.Flush()
}

// Clear drops every entry and redraws.
func (v *LogView) Clear() { v.ClearWith(nil) }

// ClearWith is Clear for callers that may already hold g.
func (v *LogView) ClearWith(g *tui.RenderGuard) {
	v.mu.Lock()
	v.entries = nil
	v.back = 0
	v.mu.Unlock()
	v.RefreshWith(g)
}

// rows wraps every entry at cols.
func (v *LogView) rows(cols int) []string {
	v.mu.Lock()
	entries := append([]string(nil), v.entries...)
	v.mu.Unlock()

	var out []string
	for _, e := range entries {
		out = append(out, width.Wrap(e, cols)...)
	}
	return out
}

// Visible returns the rows currently on screen, top to bottom.
func (v *LogView) Visible() []string {
	pos := v.Position()
	if pos.Empty() {
		return nil
	}
	rows := v.rows(pos.Width)

	v.mu.Lock()
	v.back = min(v.back, max(len(rows)-pos.Height, 0))
	end := len(rows) - v.back
	v.mu.Unlock()

	return rows[max(end-pos.Height, 0):end]
}

// Draw paints the visible rows aligned to the bottom edge.
func (v *LogView) Draw() {
	if !v.CanDraw() {
		return
	}
	pos := v.Position()
	visible := v.Visible()
	blankRows := pos.Height - len(visible)
	v.Terminal().WithOutput(func(o ansi.Output) {
		for row := 0; row < pos.Height; row++ {
			line := ""
			if row >= blankRows {
				line = visible[row-blankRows]
			}
			o.Jump(pos.Left, pos.Top+row)
			o.WriteString(width.Fit(line, pos.Width))
		}
	})
}

// OnMouse scrolls with the wheel.
func (v *LogView) OnMouse(r mouse.Report) bool {
	switch r.Action {
	case mouse.ActionScrollUp:
		v.scroll(1)
	case mouse.ActionScrollDown:
		v.scroll(-1)
	default:
		return false
	}
	return true
}

// SetKeymap replaces the default bindings.
func (v *LogView) SetKeymap(m *keybindings.Manager) {
	v.mu.Lock()
	v.keys = m
	v.mu.Unlock()
}

// OnKey scrolls a page on the page_up and page_down actions.
func (v *LogView) OnKey(k key.Key) bool {
	v.mu.Lock()
	keys := v.keys
	v.mu.Unlock()

	page := max(v.Position().Height-1, 1)
	switch keys.ActionForKey(k) {
	case keybindings.ActionPageUp:
		v.scroll(page)
	case keybindings.ActionPageDown:
		v.scroll(-page)
	default:
		return false
	}
	return true
}

func (v *LogView) scroll(n int) {
	v.mu.Lock()
	v.back = max(v.back+n, 0)
	v.mu.Unlock()
	v.Refresh()
}
