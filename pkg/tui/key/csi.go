// ABOUTME: Maps CSI, SS3 and C0 control input to Key values.
// ABOUTME: Covers the xterm tilde table, modified cursor keys, and the CSI u (kitty) codepoint form.

package key

import "strconv"

// tildeKeyTypes maps CSI <number> ~ codes to their key types (xterm numbering).
var tildeKeyTypes = map[int]KeyType{
	1:  KeyHome,
	2:  KeyInsert,
	3:  KeyDelete,
	4:  KeyEnd,
	5:  KeyPageUp,
	6:  KeyPageDown,
	7:  KeyHome,
	8:  KeyEnd,
	11: KeyF1,
	12: KeyF2,
	13: KeyF3,
	14: KeyF4,
	15: KeyF5,
	17: KeyF6,
	18: KeyF7,
	19: KeyF8,
	20: KeyF9,
	21: KeyF10,
	23: KeyF11,
	24: KeyF12,
	25: KeyF13,
	26: KeyF14,
	28: KeyF15,
	29: KeyF16,
	31: KeyF17,
	32: KeyF18,
	33: KeyF19,
	34: KeyF20,
}

// tildeCodes is the encoding direction of tildeKeyTypes, without the aliases.
var tildeCodes = map[KeyType]int{
	KeyInsert:   2,
	KeyDelete:   3,
	KeyPageUp:   5,
	KeyPageDown: 6,
}

// letterKeyTypes maps CSI and SS3 final letters to their key types.
var letterKeyTypes = map[byte]KeyType{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
	'P': KeyF1,
	'Q': KeyF2,
	'R': KeyF3,
	'S': KeyF4,
}

func init() {
	for code, kt := range tildeKeyTypes {
		if kt >= KeyF1 {
			tildeCodes[kt] = code
		}
	}
}

// ParseCSI maps the parameter bytes and final byte of a CSI sequence
// (everything after "ESC [") to a key. It reports false for sequences that
// are well formed but carry no key, such as kitty release events.
func ParseCSI(params string, final byte) (Key, bool) {
	switch final {
	case 'u':
		return parseCSIu(params)
	case '~':
		return parseTilde(params)
	case 'Z':
		if params != "" {
			return Key{}, false
		}
		return Key{Type: KeyTab, Mods: ModShift}, true
	}

	kt, ok := letterKeyTypes[final]
	if !ok {
		return Key{}, false
	}
	// Bare form: ESC [ A. Modified form: ESC [ 1 ; <mods> A.
	_, modifierStr := splitOnSemicolon(params)
	mods, _, err := parseModifiers(modifierStr)
	if err != nil {
		return Key{}, false
	}
	return Key{Type: kt, Mods: mods}, true
}

// ParseSS3 maps the byte following "ESC O" to a key.
func ParseSS3(final byte) (Key, bool) {
	kt, ok := letterKeyTypes[final]
	if !ok {
		return Key{}, false
	}
	return Key{Type: kt}, true
}

// FromControl maps a C0 control byte (0x00..0x1F, excluding ESC) to a key.
// Tab, CR and LF keep their named forms; other letters become ctrl chords.
func FromControl(b byte) Key {
	switch {
	case b == 0x09:
		return Key{Type: KeyTab}
	case b == 0x0a, b == 0x0d:
		return Key{Type: KeyEnter}
	case b == 0x00:
		return Ctrl(' ')
	case b >= 0x01 && b <= 0x1a:
		return Ctrl(rune('a' + b - 1))
	case b >= 0x1c && b <= 0x1f:
		return Ctrl(rune(`\]^_`[b-0x1c]))
	}
	return Key{Type: KeyEscape}
}

// parseCSIu handles the CSI <codepoint>[:<shifted>] [; <modifiers>[:<event>]] u format.
func parseCSIu(body string) (Key, bool) {
	codepointStr, modifierStr := splitOnSemicolon(body)

	codepoint, err := parseCodepoint(codepointStr)
	if err != nil || codepoint <= 0 {
		return Key{}, false
	}

	mods, event, err := parseModifiers(modifierStr)
	if err != nil {
		return Key{}, false
	}

	// Event type 3 = key release; ignore it
	if event == 3 {
		return Key{}, false
	}

	k := mapCodepointToKey(codepoint)
	k.Mods = mods
	return k, true
}

// parseTilde handles the CSI <number> ; <modifiers> ~ format for functional keys.
func parseTilde(body string) (Key, bool) {
	numStr, modifierStr := splitOnSemicolon(body)

	num, err := strconv.Atoi(numStr)
	if err != nil {
		return Key{}, false
	}

	kt, ok := tildeKeyTypes[num]
	if !ok {
		return Key{}, false
	}

	mods, _, err := parseModifiers(modifierStr)
	if err != nil {
		return Key{}, false
	}
	return Key{Type: kt, Mods: mods}, true
}

// splitOnSemicolon splits a string into at most two parts on the first ';'.
func splitOnSemicolon(s string) (string, string) {
	for i := 0; i < len(s); i++ {
		if s[i] == ';' {
			return s[:i], s[i+1:]
		}
	}
	return s, ""
}

// splitOnColon splits a string into at most two parts on the first ':'.
func splitOnColon(s string) (string, string) {
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			return s[:i], s[i+1:]
		}
	}
	return s, ""
}

// parseCodepoint extracts the primary unicode codepoint from a potentially colon-delimited string.
// Format: <codepoint>[:<shifted_key>[:<base_key>]]
func parseCodepoint(s string) (rune, error) {
	primary, _ := splitOnColon(s)
	n, err := strconv.Atoi(primary)
	if err != nil {
		return 0, err
	}
	return rune(n), nil
}

// parseModifiers parses the modifier and optional event type from a string.
// Format: <modifiers>[:<event_type>]
func parseModifiers(s string) (ModSet, int, error) {
	if s == "" {
		return ModNone, 0, nil
	}

	modStr, eventStr := splitOnColon(s)

	modVal, err := strconv.Atoi(modStr)
	if err != nil {
		return ModNone, 0, err
	}

	event := 0
	if eventStr != "" {
		event, err = strconv.Atoi(eventStr)
		if err != nil {
			return ModNone, 0, err
		}
	}

	return FromXterm(modVal), event, nil
}

// mapCodepointToKey converts a unicode codepoint to a base Key without modifiers.
func mapCodepointToKey(cp rune) Key {
	switch cp {
	case 13:
		return Key{Type: KeyEnter}
	case 9:
		return Key{Type: KeyTab}
	case 127:
		return Key{Type: KeyBackspace}
	case 27:
		return Key{Type: KeyEscape}
	default:
		return Key{Type: KeyRune, Rune: cp}
	}
}
