// ABOUTME: Semantic color roles for controls: Role, Palette, Theme
// ABOUTME: Roles render as lipgloss styles or as raw fg/bg pairs for the terminal's color tracker

package theme

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/mauromedda/vtui/pkg/tui/ansi"
)

// Role is how one kind of text is drawn.
type Role struct {
	Fg   ansi.Color
	Bg   ansi.Color
	Bold bool
}

// Plain draws with the terminal's default colors.
var Plain = Role{Fg: ansi.ColorDefault, Bg: ansi.ColorDefault}

// Style returns the lipgloss style for r.
func (r Role) Style() lipgloss.Style {
	s := lipgloss.NewStyle()
	if r.Fg != ansi.ColorDefault {
		s = s.Foreground(lipgloss.Color(strconv.Itoa(int(r.Fg))))
	}
	if r.Bg != ansi.ColorDefault {
		s = s.Background(lipgloss.Color(strconv.Itoa(int(r.Bg))))
	}
	if r.Bold {
		s = s.Bold(true)
	}
	return s
}

// IsPlain reports whether r changes nothing.
func (r Role) IsPlain() bool { return r == Plain }

// Palette assigns a Role to each kind of text controls draw.
type Palette struct {
	Text   Role
	Muted  Role
	Accent Role
	Focus  Role
	Border Role
	Error  Role
}

// Theme is a named palette. Dark tells lipgloss which side of its adaptive
// colors to pick.
type Theme struct {
	Name    string
	Dark    bool
	Palette Palette
}

// DefaultPalette leaves body text in the terminal's colors.
func DefaultPalette() Palette {
	return Palette{
		Text:   Plain,
		Muted:  Role{Fg: ansi.BrightBlack, Bg: ansi.ColorDefault},
		Accent: Role{Fg: 208, Bg: ansi.ColorDefault},
		Focus:  Role{Fg: ansi.ColorDefault, Bg: 236},
		Border: Role{Fg: ansi.BrightBlack, Bg: ansi.ColorDefault},
		Error:  Role{Fg: ansi.Red, Bg: ansi.ColorDefault, Bold: true},
	}
}
