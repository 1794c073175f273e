// ABOUTME: Word wrapping of styled text into lines no wider than a column count
// ABOUTME: Active colors are re-emitted at the start of each continuation line

package width

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Wrap splits s into lines of at most cols columns. Lines break between
// words; a word longer than a line is broken where it reaches the edge.
// Newlines in s always break. Attributes set by SGR sequences carry over
// to the following lines.
func Wrap(s string, cols int) []string {
	if cols <= 0 {
		return nil
	}
	wr := wrapper{cols: cols}
	for _, para := range strings.Split(s, "\n") {
		for j, word := range strings.Split(para, " ") {
			if j > 0 {
				if wr.w+1+Cells(word) <= cols {
					wr.write(" ")
				} else {
					wr.newline()
				}
			}
			wr.write(word)
		}
		wr.newline()
	}
	return wr.out
}

type wrapper struct {
	cols int
	out  []string
	line strings.Builder
	w    int
	sgr  []string
}

func (wr *wrapper) newline() {
	wr.out = append(wr.out, wr.line.String())
	wr.line.Reset()
	wr.w = 0
	for _, seq := range wr.sgr {
		wr.line.WriteString(seq)
	}
}

// write appends s, breaking the line whenever the next cluster would not fit.
func (wr *wrapper) write(s string) {
	state := -1
	for i := 0; i < len(s); {
		if s[i] == 0x1b {
			end := escapeEnd(s, i)
			seq := s[i:end]
			switch {
			case isSGRReset(seq):
				wr.sgr = wr.sgr[:0]
			case isSGR(seq):
				wr.sgr = append(wr.sgr, seq)
			}
			wr.line.WriteString(seq)
			i = end
			continue
		}
		cluster, rest, _, next := uniseg.FirstGraphemeClusterInString(s[i:], state)
		state = next
		i = len(s) - len(rest)

		cw := clusterCells(cluster)
		if wr.w > 0 && wr.w+cw > wr.cols {
			wr.newline()
		}
		wr.line.WriteString(cluster)
		wr.w += cw
	}
}
