// ABOUTME: Recognizes escape sequences embedded in text so they can be skipped or carried over

package width

import "strings"

// Strip removes escape sequences from s.
func Strip(s string) string {
	if strings.IndexByte(s, 0x1b) < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] == 0x1b {
			i = escapeEnd(s, i)
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// escapeEnd returns the index just past the escape sequence at s[i].
func escapeEnd(s string, i int) int {
	i++
	if i >= len(s) {
		return i
	}
	switch s[i] {
	case '[':
		for i++; i < len(s); i++ {
			if s[i] >= 0x40 && s[i] <= 0x7e {
				return i + 1
			}
		}
		return i
	case ']', 'P', '_', '^':
		// String sequences end with BEL or ST; only OSC accepts BEL.
		osc := s[i] == ']'
		for i++; i < len(s); i++ {
			if osc && s[i] == 0x07 {
				return i + 1
			}
			if s[i] == 0x1b && i+1 < len(s) && s[i+1] == '\\' {
				return i + 2
			}
		}
		return i
	case '(', ')':
		return min(i+2, len(s))
	}
	return i + 1
}

// isSGRReset reports whether seq turns all attributes off.
func isSGRReset(seq string) bool {
	return seq == "\x1b[m" || seq == "\x1b[0m"
}

// isSGR reports whether seq is a select-graphic-rendition sequence.
func isSGR(seq string) bool {
	return len(seq) >= 3 && seq[1] == '[' && seq[len(seq)-1] == 'm'
}
