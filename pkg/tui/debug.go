// ABOUTME: DebugTree prints the control tree with positions and focus for troubleshooting

package tui

import (
	"fmt"
	"io"
	"strings"
)

// DebugTree writes one line per control, indented by depth. The focused
// control is marked with '*'.
func (t *Terminal) DebugTree(w io.Writer) error {
	t.mu.Lock()
	focused := t.focused
	t.mu.Unlock()

	root := t.Root()
	if root == nil {
		_, err := fmt.Fprintln(w, "(no root)")
		return err
	}
	return debugTree(w, root, focused, 0)
}

func debugTree(w io.Writer, c, focused Control, depth int) error {
	mark := ""
	if c == focused {
		mark = " *"
	}
	if _, err := fmt.Fprintf(w, "%s%s %s%s\n", strings.Repeat("  ", depth), c.Core().ID(), c.Core().Position(), mark); err != nil {
		return err
	}
	p, ok := c.(Parent)
	if !ok {
		return nil
	}
	for _, ch := range p.Children() {
		if err := debugTree(w, ch, focused, depth+1); err != nil {
			return err
		}
	}
	return nil
}
