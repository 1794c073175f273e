// ABOUTME: Defines the Key value, its modifier set, and human-readable key names.
// ABOUTME: Printable runes, named keys, and ctrl+letter chords share one comparable representation.

package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrUnknownName is returned by ParseName for names that map to no key.
var ErrUnknownName = errors.New("unknown key name")

// ModSet is a bitmask of held modifiers. Bit values follow the xterm
// modifier parameter, which encodes them as 1 + mask.
type ModSet uint8

const (
	ModShift ModSet = 1 << iota
	ModAlt
	ModCtrl
)

// ModNone is the empty modifier set.
const ModNone ModSet = 0

// Has reports whether every modifier in o is present in m.
func (m ModSet) Has(o ModSet) bool { return m&o == o }

// FromXterm decodes an xterm modifier parameter. Values <= 1 mean no modifiers.
func FromXterm(param int) ModSet {
	if param <= 1 {
		return ModNone
	}
	return ModSet((param - 1) & 7)
}

// Xterm returns the xterm wire parameter for the set.
func (m ModSet) Xterm() int { return int(m&7) + 1 }

// String renders the set as "ctrl+alt+shift" style prefixes without a trailing "+".
func (m ModSet) String() string {
	var parts []string
	if m.Has(ModCtrl) {
		parts = append(parts, "ctrl")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "alt")
	}
	if m.Has(ModShift) {
		parts = append(parts, "shift")
	}
	return strings.Join(parts, "+")
}

// KeyType enumerates the kinds of keys the decoder can produce.
type KeyType uint8

const (
	KeyRune      KeyType = iota // Printable character (Rune is set)
	KeyEnter                    // Enter / Return
	KeyTab                      // Tab; Shift+Tab is KeyTab with ModShift
	KeyBackspace                // Backspace / DEL (0x7F)
	KeyEscape                   // Lone escape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
	KeyDelete
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyF13
	KeyF14
	KeyF15
	KeyF16
	KeyF17
	KeyF18
	KeyF19
	KeyF20
)

// Key is a decoded keystroke. Keys are comparable with ==.
type Key struct {
	Type KeyType
	Rune rune // For KeyRune
	Mods ModSet
}

// Rune returns an unmodified printable key.
func Rune(r rune) Key { return Key{Type: KeyRune, Rune: r} }

// Ctrl returns the ctrl chord for r, e.g. Ctrl('c').
func Ctrl(r rune) Key { return Key{Type: KeyRune, Rune: r, Mods: ModCtrl} }

// Named returns a non-printable key with the given modifiers.
func Named(t KeyType, mods ModSet) Key { return Key{Type: t, Mods: mods} }

// With returns a copy of k with extra modifiers set.
func (k Key) With(mods ModSet) Key {
	k.Mods |= mods
	return k
}

// keyTypeNames provides the canonical lowercase label for each named key.
var keyTypeNames = map[KeyType]string{
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBackspace: "backspace",
	KeyEscape:    "escape",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "pgup",
	KeyPageDown:  "pgdown",
	KeyInsert:    "insert",
	KeyDelete:    "delete",
}

// namedTypes is the inverse of keyTypeNames plus accepted aliases.
var namedTypes = map[string]KeyType{
	"return":   KeyEnter,
	"esc":      KeyEscape,
	"pageup":   KeyPageUp,
	"pagedown": KeyPageDown,
	"ins":      KeyInsert,
	"del":      KeyDelete,
}

func init() {
	for kt, name := range keyTypeNames {
		namedTypes[name] = kt
	}
	for i := KeyF1; i <= KeyF20; i++ {
		namedTypes[fmt.Sprintf("f%d", i-KeyF1+1)] = i
	}
}

// Name returns the label for the key without modifiers.
func (k Key) Name() string {
	if k.Type == KeyRune {
		if k.Rune == ' ' {
			return "space"
		}
		return string(k.Rune)
	}
	if k.Type >= KeyF1 && k.Type <= KeyF20 {
		return fmt.Sprintf("f%d", k.Type-KeyF1+1)
	}
	if name, ok := keyTypeNames[k.Type]; ok {
		return name
	}
	return "unknown"
}

// String returns the key in "mods+name" form, e.g. "ctrl+c" or "alt+shift+up".
func (k Key) String() string {
	if k.Mods == ModNone {
		return k.Name()
	}
	return k.Mods.String() + "+" + k.Name()
}

// ParseName is the inverse of String. Modifier prefixes may appear in any order
// and "meta" is accepted as an alias of "alt".
func ParseName(s string) (Key, error) {
	if s == "" {
		return Key{}, fmt.Errorf("%w: empty", ErrUnknownName)
	}

	var mods ModSet
	rest := s
	for {
		i := strings.IndexByte(rest, '+')
		// A trailing "+" is the plus key itself.
		if i <= 0 || i == len(rest)-1 {
			break
		}
		switch strings.ToLower(rest[:i]) {
		case "ctrl", "control":
			mods |= ModCtrl
		case "alt", "meta":
			mods |= ModAlt
		case "shift":
			mods |= ModShift
		default:
			return Key{}, fmt.Errorf("%w: modifier %q in %q", ErrUnknownName, rest[:i], s)
		}
		rest = rest[i+1:]
	}

	if utf8.RuneCountInString(rest) == 1 {
		r, _ := utf8.DecodeRuneInString(rest)
		return Key{Type: KeyRune, Rune: r, Mods: mods}, nil
	}
	lower := strings.ToLower(rest)
	if lower == "space" {
		return Key{Type: KeyRune, Rune: ' ', Mods: mods}, nil
	}
	if kt, ok := namedTypes[lower]; ok {
		return Key{Type: kt, Mods: mods}, nil
	}
	return Key{}, fmt.Errorf("%w: %q", ErrUnknownName, s)
}
