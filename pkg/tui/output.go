// ABOUTME: Terminal output operations serialized behind the output mutex
// ABOUTME: Every call becomes a no-op while output is suppressed

package tui

import (
	"github.com/mauromedda/vtui/internal/log"
	"github.com/mauromedda/vtui/pkg/tui/ansi"
)

// WithOutput runs fn with exclusive access to the ANSI output. Use it to
// emit several sequences without interleaving from other goroutines.
func (t *Terminal) WithOutput(fn func(o ansi.Output)) {
	if t.SuppressOutput() {
		return
	}
	t.outputMu.Lock()
	defer t.outputMu.Unlock()
	fn(t.out)
}

// Jump moves the cursor to column x, row y. A negative y stays on the row.
func (t *Terminal) Jump(x, y int) { t.WithOutput(func(o ansi.Output) { o.Jump(x, y) }) }

// Up moves the cursor up n rows.
func (t *Terminal) Up(n int) { t.WithOutput(func(o ansi.Output) { o.Up(n) }) }

// Down moves the cursor down n rows.
func (t *Terminal) Down(n int) { t.WithOutput(func(o ansi.Output) { o.Down(n) }) }

// Right moves the cursor right n columns.
func (t *Terminal) Right(n int) { t.WithOutput(func(o ansi.Output) { o.Right(n) }) }

// Left moves the cursor left n columns.
func (t *Terminal) Left(n int) { t.WithOutput(func(o ansi.Output) { o.Left(n) }) }

// Front moves the cursor to the first column of the current row.
func (t *Terminal) Front() { t.Jump(0, -1) }

// Back moves the cursor to the last column of the current row.
func (t *Terminal) Back() { t.Jump(t.Cols()-1, -1) }

// ClearLine erases the current row.
func (t *Terminal) ClearLine() { t.WithOutput(func(o ansi.Output) { o.ClearLine() }) }

// ClearRight erases from the cursor to the end of the row.
func (t *Terminal) ClearRight() { t.WithOutput(func(o ansi.Output) { o.ClearRight() }) }

// ClearLeft erases from the start of the row to the cursor.
func (t *Terminal) ClearLeft() { t.WithOutput(func(o ansi.Output) { o.ClearLeft() }) }

// ShowCursor makes the cursor visible.
func (t *Terminal) ShowCursor() { t.WithOutput(func(o ansi.Output) { o.ShowCursor() }) }

// HideCursor hides the cursor.
func (t *Terminal) HideCursor() { t.WithOutput(func(o ansi.Output) { o.HideCursor() }) }

// VMargins sets the scroll region to rows top..bottom.
func (t *Terminal) VMargins(top, bottom int) {
	t.WithOutput(func(o ansi.Output) { o.VMargins(top, bottom) })
}

// ResetVMargins restores the full-height scroll region.
func (t *Terminal) ResetVMargins() { t.WithOutput(func(o ansi.Output) { o.ResetVMargins() }) }

// HMargins sets the left and right margins to columns left..right.
func (t *Terminal) HMargins(left, right int) {
	t.WithOutput(func(o ansi.Output) { o.HMargins(left, right) })
}

// ResetHMargins restores the full-width margins.
func (t *Terminal) ResetHMargins() { t.WithOutput(func(o ansi.Output) { o.ResetHMargins() }) }

// EnableHMargins turns on left and right margin mode.
func (t *Terminal) EnableHMargins() { t.WithOutput(func(o ansi.Output) { o.EnableHMargins() }) }

// DisableHMargins turns off left and right margin mode.
func (t *Terminal) DisableHMargins() { t.WithOutput(func(o ansi.Output) { o.DisableHMargins() }) }

// Margins confines scrolling to pos using both margin pairs.
func (t *Terminal) Margins(pos Position) {
	t.WithOutput(func(o ansi.Output) {
		o.EnableHMargins()
		o.HMargins(pos.Left, pos.Right())
		o.VMargins(pos.Top, pos.Bottom())
	})
}

// ResetMargins restores full-screen margins.
func (t *Terminal) ResetMargins() {
	t.WithOutput(func(o ansi.Output) {
		o.ResetHMargins()
		o.DisableHMargins()
		o.ResetVMargins()
	})
}

// SetOrigin makes cursor addressing relative to the margins.
func (t *Terminal) SetOrigin() { t.WithOutput(func(o ansi.Output) { o.SetOrigin() }) }

// ResetOrigin makes cursor addressing absolute again.
func (t *Terminal) ResetOrigin() { t.WithOutput(func(o ansi.Output) { o.ResetOrigin() }) }

// VScroll scrolls the margin region; negative n scrolls content up.
func (t *Terminal) VScroll(n int) { t.WithOutput(func(o ansi.Output) { o.VScroll(n) }) }

// SetColors sets foreground and background; unchanged colors emit nothing.
func (t *Terminal) SetColors(fg, bg ansi.Color) {
	t.WithOutput(func(o ansi.Output) {
		o.SetForeground(fg)
		o.SetBackground(bg)
	})
}

// ResetColors restores the default colors.
func (t *Terminal) ResetColors() { t.WithOutput(func(o ansi.Output) { o.ResetColors() }) }

// Write writes raw bytes. Colors set by the bytes are not tracked.
func (t *Terminal) Write(p []byte) (n int, err error) {
	if t.SuppressOutput() {
		return len(p), nil
	}
	t.outputMu.Lock()
	defer t.outputMu.Unlock()
	t.out.InvalidateColors()
	return t.out.Write(p)
}

// WriteString writes text at the cursor.
func (t *Terminal) WriteString(s string) (n int, err error) {
	if t.SuppressOutput() {
		return len(s), nil
	}
	t.outputMu.Lock()
	defer t.outputMu.Unlock()
	return t.out.WriteString(s)
}

// Flush sends buffered output to the device.
func (t *Terminal) Flush() error {
	t.outputMu.Lock()
	defer t.outputMu.Unlock()
	if err := t.out.Flush(); err != nil {
		log.Warn("terminal: flush: %v", err)
		return err
	}
	return nil
}
