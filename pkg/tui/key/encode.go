// ABOUTME: Encodes a Key back into the byte sequence an xterm-compatible terminal sends.
// ABOUTME: Chords with no legacy form fall back to CSI u so every key decodes to itself.

package key

import (
	"strconv"
	"unicode/utf8"
)

// cursorLetters is the encoding direction of letterKeyTypes for cursor keys.
var cursorLetters = map[KeyType]byte{
	KeyUp:    'A',
	KeyDown:  'B',
	KeyRight: 'C',
	KeyLeft:  'D',
	KeyHome:  'H',
	KeyEnd:   'F',
}

// bareBytes are unmodified named keys with single-byte forms.
var bareBytes = map[KeyType]byte{
	KeyEnter:     '\r',
	KeyTab:       '\t',
	KeyBackspace: 0x7f,
	KeyEscape:    0x1b,
}

// csiuCodepoints are the CSI u codepoints for modified single-byte keys.
var csiuCodepoints = map[KeyType]int{
	KeyEnter:     13,
	KeyTab:       9,
	KeyBackspace: 127,
	KeyEscape:    27,
}

// Encode returns the bytes a terminal would send for k.
func Encode(k Key) []byte {
	if k.Type == KeyRune {
		return encodeRune(k)
	}

	if b, ok := bareBytes[k.Type]; ok {
		switch {
		case k.Mods == ModNone:
			return []byte{b}
		case k.Type == KeyTab && k.Mods == ModShift:
			return []byte("\x1b[Z")
		}
		return csiu(csiuCodepoints[k.Type], k.Mods)
	}

	if letter, ok := cursorLetters[k.Type]; ok {
		if k.Mods == ModNone {
			return []byte{0x1b, '[', letter}
		}
		buf := []byte("\x1b[1;")
		buf = strconv.AppendInt(buf, int64(k.Mods.Xterm()), 10)
		return append(buf, letter)
	}

	if code, ok := tildeCodes[k.Type]; ok {
		buf := []byte("\x1b[")
		buf = strconv.AppendInt(buf, int64(code), 10)
		if k.Mods != ModNone {
			buf = append(buf, ';')
			buf = strconv.AppendInt(buf, int64(k.Mods.Xterm()), 10)
		}
		return append(buf, '~')
	}
	return nil
}

func encodeRune(k Key) []byte {
	switch k.Mods {
	case ModNone:
		return utf8.AppendRune(nil, k.Rune)
	case ModCtrl:
		if b, ok := ctrlByte(k.Rune); ok {
			return []byte{b}
		}
	case ModAlt:
		// ESC [ and ESC O introduce sequences; those chords need CSI u.
		if k.Rune != '[' && k.Rune != 'O' && k.Rune >= 0x20 && k.Rune != 0x7f {
			return utf8.AppendRune([]byte{0x1b}, k.Rune)
		}
	}
	return csiu(int(k.Rune), k.Mods)
}

// ctrlByte returns the C0 byte for a ctrl chord when it decodes back to the
// same chord. Tab, LF, CR and ESC are excluded because they decode as named keys.
func ctrlByte(r rune) (byte, bool) {
	switch {
	case r == ' ':
		return 0x00, true
	case r >= 'a' && r <= 'z':
		b := byte(r-'a') + 1
		if b == 0x09 || b == 0x0a || b == 0x0d {
			return 0, false
		}
		return b, true
	case r == '\\', r == ']', r == '^', r == '_':
		return byte(0x1c + indexOf(`\]^_`, byte(r))), true
	}
	return 0, false
}

func indexOf(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

func csiu(codepoint int, mods ModSet) []byte {
	buf := []byte("\x1b[")
	buf = strconv.AppendInt(buf, int64(codepoint), 10)
	if mods != ModNone {
		buf = append(buf, ';')
		buf = strconv.AppendInt(buf, int64(mods.Xterm()), 10)
	}
	return append(buf, 'u')
}
