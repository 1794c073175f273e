// ABOUTME: Label draws static text inside its rectangle, optionally wrapped and styled with lipgloss
// ABOUTME: Lines are cut or padded to the control's width; extra rows are blanked

package component

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/mauromedda/vtui/pkg/tui"
	"github.com/mauromedda/vtui/pkg/tui/ansi"
	"github.com/mauromedda/vtui/pkg/tui/theme"
	"github.com/mauromedda/vtui/pkg/tui/width"
)

// Label shows text. It never takes input.
type Label struct {
	*tui.Base

	mu     sync.Mutex
	text   string
	wrap   bool
	style  lipgloss.Style
	styled bool
}

// NewLabel creates a Label under parent.
func NewLabel(parent tui.Parent, text string) *Label {
	l := &Label{text: width.Normalize(text)}
	l.Base = tui.NewBase(l)
	tui.Attach(parent, l)
	return l
}

// Text returns the label's text.
func (l *Label) Text() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.text
}

// SetText replaces the text and redraws the label.
func (l *Label) SetText(text string) { l.SetTextWith(nil, text) }

// SetTextWith is SetText for callers that may already hold g.
func (l *Label) SetTextWith(g *tui.RenderGuard, text string) {
	l.mu.Lock()
	l.text = width.Normalize(text)
	l.mu.Unlock()
	l.RefreshWith(g)
}

// SetWrap turns word wrapping on or off. Without wrapping each line of the
// text is cut at the right edge.
func (l *Label) SetWrap(wrap bool) {
	l.mu.Lock()
	l.wrap = wrap
	l.mu.Unlock()
}

// SetStyle draws the text with s instead of the theme's text role.
func (l *Label) SetStyle(s lipgloss.Style) {
	l.mu.Lock()
	l.style, l.styled = s, true
	l.mu.Unlock()
}

// Lines returns the rows the label shows at the given width, unstyled.
func (l *Label) Lines(cols int) []string {
	l.mu.Lock()
	text, wrap := l.text, l.wrap
	l.mu.Unlock()

	if wrap {
		return width.Wrap(text, cols)
	}
	return strings.Split(text, "\n")
}

func (l *Label) render(line string) (string, bool) {
	l.mu.Lock()
	style, styled := l.style, l.styled
	l.mu.Unlock()

	if !styled {
		role := theme.Current().Palette.Text
		if role.IsPlain() {
			return line, false
		}
		style = role.Style()
	}
	return style.Render(line), true
}

// Draw paints the visible rows.
func (l *Label) Draw() {
	if !l.CanDraw() {
		return
	}
	pos := l.Position()
	lines := l.Lines(pos.Width)
	blank := strings.Repeat(" ", pos.Width)
	l.Terminal().WithOutput(func(o ansi.Output) {
		for row := 0; row < pos.Height; row++ {
			line := blank
			if row < len(lines) {
				line = width.Fit(lines[row], pos.Width)
			}
			o.Jump(pos.Left, pos.Top+row)
			rendered, styled := l.render(line)
			o.WriteString(rendered)
			if styled {
				o.WriteString(xansi.ResetStyle)
				o.InvalidateColors()
			}
		}
	})
}
