// ABOUTME: 256-color palette indices and the Coloration tracker that suppresses redundant SGR writes.

package ansi

import (
	"fmt"
	"strconv"
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// Color is an xterm 256-color palette index, or ColorDefault.
type Color int16

// ColorDefault selects the terminal's default foreground or background.
const ColorDefault Color = -1

// Named palette entries.
const (
	Black Color = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
	BrightBlack
	BrightRed
	BrightGreen
	BrightYellow
	BrightBlue
	BrightMagenta
	BrightCyan
	BrightWhite
)

func (c Color) String() string {
	if c == ColorDefault {
		return "default"
	}
	return strconv.Itoa(int(c))
}

var colorNames = [...]string{
	"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
	"bright-black", "bright-red", "bright-green", "bright-yellow",
	"bright-blue", "bright-magenta", "bright-cyan", "bright-white",
}

// ParseColor accepts "default", a name such as "red" or "bright-blue", or a
// palette index from 0 to 255.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "default" {
		return ColorDefault, nil
	}
	for i, name := range colorNames {
		if s == name {
			return Color(i), nil
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 255 {
		return ColorDefault, fmt.Errorf("unknown color %q", s)
	}
	return Color(n), nil
}

// xcolor converts a palette index to its x/ansi form: the 16 basic colors
// keep their short SGR codes, the rest use the 256-color form.
func (c Color) xcolor() xansi.Color {
	if c < 16 {
		return xansi.BasicColor(c)
	}
	return xansi.IndexedColor(c)
}

// Coloration remembers the last foreground and background sent so a repeat
// of the same color emits nothing. The zero value knows nothing and emits
// the first color it is given.
type Coloration struct {
	fg, bg  Color
	fgKnown bool
	bgKnown bool
}

// Foreground records c and reports whether it must be written.
func (co *Coloration) Foreground(c Color) bool {
	if co.fgKnown && co.fg == c {
		return false
	}
	co.fg, co.fgKnown = c, true
	return true
}

// Background records c and reports whether it must be written.
func (co *Coloration) Background(c Color) bool {
	if co.bgKnown && co.bg == c {
		return false
	}
	co.bg, co.bgKnown = c, true
	return true
}

// Colors returns the last recorded colors. Unknown colors read as ColorDefault.
func (co *Coloration) Colors() (fg, bg Color) {
	fg, bg = ColorDefault, ColorDefault
	if co.fgKnown {
		fg = co.fg
	}
	if co.bgKnown {
		bg = co.bg
	}
	return fg, bg
}

// Forget drops what is known, forcing the next colors to be written.
func (co *Coloration) Forget() {
	co.fgKnown, co.bgKnown = false, false
}

// Reset records that both colors are back to the terminal defaults.
func (co *Coloration) Reset() {
	co.fg, co.bg = ColorDefault, ColorDefault
	co.fgKnown, co.bgKnown = true, true
}
