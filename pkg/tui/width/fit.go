// ABOUTME: Fit, Truncate, and Pad size styled text to an exact number of columns
// ABOUTME: Escape sequences pass through untouched and never count toward the width

package width

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Ellipsis is appended by Truncate when text is cut.
const Ellipsis = "…"

// Truncate cuts s to at most cols columns. When text is dropped the last
// column becomes an ellipsis and attributes are reset before it.
func Truncate(s string, cols int) string {
	if cols <= 0 {
		return ""
	}
	if Cells(s) <= cols {
		return s
	}
	head, _ := cut(s, cols-1)
	if strings.IndexByte(head, 0x1b) >= 0 {
		head += "\x1b[0m"
	}
	return head + Ellipsis
}

// Pad appends spaces until s is cols columns wide.
func Pad(s string, cols int) string {
	if w := Cells(s); w < cols {
		return s + strings.Repeat(" ", cols-w)
	}
	return s
}

// Fit returns s cut or padded to exactly cols columns. A wide cluster that
// would straddle the edge is replaced by a space.
func Fit(s string, cols int) string {
	if cols <= 0 {
		return ""
	}
	head, w := cut(s, cols)
	if w < cols {
		head += strings.Repeat(" ", cols-w)
	}
	return head
}

// cut returns the longest prefix of s that fits in cols columns and its
// width. Escape sequences inside the prefix are kept.
func cut(s string, cols int) (string, int) {
	var b strings.Builder
	w := 0
	state := -1
	for i := 0; i < len(s); {
		if s[i] == 0x1b {
			end := escapeEnd(s, i)
			b.WriteString(s[i:end])
			i = end
			continue
		}
		cluster, rest, _, next := uniseg.FirstGraphemeClusterInString(s[i:], state)
		state = next
		cw := clusterCells(cluster)
		if w+cw > cols {
			break
		}
		b.WriteString(cluster)
		w += cw
		i = len(s) - len(rest)
	}
	return b.String(), w
}
