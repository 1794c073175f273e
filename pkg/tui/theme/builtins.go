// ABOUTME: Built-in themes: default, dark, light, mono
// ABOUTME: Builtin(name) looks one up; Current/Set hold the process-wide active theme

package theme

import (
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"

	"github.com/mauromedda/vtui/pkg/tui/ansi"
)

var builtins = map[string]*Theme{
	"default": {Name: "default", Dark: true, Palette: DefaultPalette()},
	"dark": {
		Name: "dark",
		Dark: true,
		Palette: Palette{
			Text:   Role{Fg: ansi.BrightWhite, Bg: ansi.ColorDefault},
			Muted:  Role{Fg: 245, Bg: ansi.ColorDefault},
			Accent: Role{Fg: 214, Bg: ansi.ColorDefault},
			Focus:  Role{Fg: ansi.BrightWhite, Bg: 238},
			Border: Role{Fg: 240, Bg: ansi.ColorDefault},
			Error:  Role{Fg: 203, Bg: ansi.ColorDefault, Bold: true},
		},
	},
	"light": {
		Name: "light",
		Palette: Palette{
			Text:   Role{Fg: ansi.Black, Bg: ansi.ColorDefault},
			Muted:  Role{Fg: 244, Bg: ansi.ColorDefault},
			Accent: Role{Fg: 166, Bg: ansi.ColorDefault},
			Focus:  Role{Fg: ansi.Black, Bg: 254},
			Border: Role{Fg: 250, Bg: ansi.ColorDefault},
			Error:  Role{Fg: 160, Bg: ansi.ColorDefault, Bold: true},
		},
	},
	"mono": {
		Name: "mono",
		Dark: true,
		Palette: Palette{
			Text:   Plain,
			Muted:  Plain,
			Accent: Role{Fg: ansi.ColorDefault, Bg: ansi.ColorDefault, Bold: true},
			Focus:  Role{Fg: ansi.ColorDefault, Bg: ansi.ColorDefault, Bold: true},
			Border: Plain,
			Error:  Role{Fg: ansi.ColorDefault, Bg: ansi.ColorDefault, Bold: true},
		},
	},
}

// Builtin returns the built-in theme called name.
func Builtin(name string) (*Theme, error) {
	t, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown theme %q", name)
	}
	return t, nil
}

// BuiltinNames lists the built-in themes in sorted order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var current atomic.Pointer[Theme]

func init() {
	Set(nil)
}

// Current returns the active theme. It is never nil.
func Current() *Theme { return current.Load() }

// Set makes t the active theme. A nil t restores the default.
//
// It also fixes lipgloss's background guess so lipgloss never queries the
// terminal with OSC 11; the reply would arrive on the input stream.
func Set(t *Theme) {
	if t == nil {
		t = builtins["default"]
	}
	lipgloss.SetHasDarkBackground(t.Dark)
	current.Store(t)
}
