// ABOUTME: Mouse reporting modes, decoded mouse reports, and SGR (1006) button-code decoding.
// ABOUTME: Coordinates in a Report are 0-based cells; the wire form is 1-based.

package mouse

import (
	"fmt"
	"strconv"
	"strings"

	xansi "github.com/charmbracelet/x/ansi"

	"github.com/mauromedda/vtui/pkg/tui/key"
)

// Mode selects which mouse events the terminal reports. The value is the
// DEC private mode number that enables it, except ModeNone.
type Mode int

const (
	ModeNone      Mode = 0
	ModeBasic     Mode = 9    // X10: presses only
	ModeNormal    Mode = 1000 // presses and releases
	ModeHighlight Mode = 1001
	ModeMotion    Mode = 1002 // plus motion while a button is held
	ModeAny       Mode = 1003 // plus all motion
)

var modeNames = map[Mode]string{
	ModeNone:      "none",
	ModeBasic:     "basic",
	ModeNormal:    "normal",
	ModeHighlight: "highlight",
	ModeMotion:    "motion",
	ModeAny:       "any",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "mode(" + strconv.Itoa(int(m)) + ")"
}

// ParseMode accepts a mode name ("none", "normal", ...) or its DEC number.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil {
		if _, ok := modeNames[Mode(n)]; ok {
			return Mode(n), nil
		}
	}
	return ModeNone, fmt.Errorf("unknown mouse mode %q", s)
}

// Enable returns the sequence that turns on m with SGR extended coordinates.
// ModeNone enables nothing.
func (m Mode) Enable() string {
	if m == ModeNone {
		return ""
	}
	return xansi.SetMode(xansi.DECMode(m)) + xansi.SetMode(xansi.SgrExtMouseMode)
}

// Disable returns the sequence that turns m and SGR coordinates off.
func (m Mode) Disable() string {
	if m == ModeNone {
		return ""
	}
	return xansi.ResetMode(xansi.DECMode(m)) + xansi.ResetMode(xansi.SgrExtMouseMode)
}

// Action is what happened in a mouse report.
type Action uint8

const (
	ActionMove Action = iota
	ActionDown
	ActionUp
	ActionDrag
	ActionScrollUp
	ActionScrollDown
)

var actionNames = [...]string{"move", "down", "up", "drag", "scroll_up", "scroll_down"}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// Button identifies the mouse button. ButtonNone appears on motion without a
// held button and on releases whose button the terminal did not report.
type Button uint8

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
)

var buttonNames = [...]string{"none", "left", "right", "middle"}

func (b Button) String() string {
	if int(b) < len(buttonNames) {
		return buttonNames[b]
	}
	return "unknown"
}

// Report is a decoded mouse event.
type Report struct {
	Action Action
	Button Button
	Mods   key.ModSet
	X, Y   int
}

func (r Report) String() string {
	var b strings.Builder
	if r.Mods != key.ModNone {
		b.WriteString(r.Mods.String())
		b.WriteByte('+')
	}
	b.WriteString(r.Action.String())
	if r.Button != ButtonNone {
		b.WriteByte(' ')
		b.WriteString(r.Button.String())
	}
	fmt.Fprintf(&b, " @%d,%d", r.X, r.Y)
	return b.String()
}

// Button code bits in the SGR and X10 encodings.
const (
	bitShift  = 4
	bitAlt    = 8
	bitCtrl   = 16
	bitMotion = 32
	bitScroll = 64
)

// Decode builds a Report from an SGR button code, the final byte ('M' for
// press or motion, 'm' for release) and 1-based wire coordinates.
func Decode(code int, final byte, x, y int) Report {
	r := Report{X: x - 1, Y: y - 1}
	if code&bitShift != 0 {
		r.Mods |= key.ModShift
	}
	if code&bitAlt != 0 {
		r.Mods |= key.ModAlt
	}
	if code&bitCtrl != 0 {
		r.Mods |= key.ModCtrl
	}

	low := code & 3
	if code&bitScroll != 0 {
		if low == 0 {
			r.Action = ActionScrollUp
		} else {
			r.Action = ActionScrollDown
		}
		return r
	}

	switch low {
	case 0:
		r.Button = ButtonLeft
	case 1:
		r.Button = ButtonMiddle
	case 2:
		r.Button = ButtonRight
	}

	switch {
	case code&bitMotion != 0 && low != 3:
		r.Action = ActionDrag
	case code&bitMotion != 0:
		r.Action = ActionMove
	case final == 'm', low == 3:
		r.Action = ActionUp
	default:
		r.Action = ActionDown
	}
	return r
}

// Code returns the SGR button code and final byte that Decode maps back to r.
func (r Report) Code() (int, byte) {
	code := 0
	if r.Mods.Has(key.ModShift) {
		code |= bitShift
	}
	if r.Mods.Has(key.ModAlt) {
		code |= bitAlt
	}
	if r.Mods.Has(key.ModCtrl) {
		code |= bitCtrl
	}

	switch r.Action {
	case ActionScrollUp:
		return code | bitScroll, 'M'
	case ActionScrollDown:
		return code | bitScroll | 1, 'M'
	}

	low := 3
	switch r.Button {
	case ButtonLeft:
		low = 0
	case ButtonMiddle:
		low = 1
	case ButtonRight:
		low = 2
	}
	code |= low

	switch r.Action {
	case ActionMove, ActionDrag:
		return code | bitMotion, 'M'
	case ActionUp:
		return code, 'm'
	}
	return code, 'M'
}

// Encode returns the SGR wire sequence for r.
func (r Report) Encode() string {
	code, final := r.Code()
	return xansi.MouseSgr(byte(code), r.X, r.Y, final == 'm')
}

// EncodeX10 returns the legacy CSI M wire sequence for r. The release of
// any button is sent as low bits 3, so the button is lost. Coordinates
// must be below 223.
func (r Report) EncodeX10() string {
	code, final := r.Code()
	if final == 'm' {
		code |= 3
	}
	return xansi.MouseX10(byte(code), r.X, r.Y)
}
