// ABOUTME: Output abstraction for cursor, erase, margin and scroll control sequences.
// ABOUTME: Stream is the buffered ANSI implementation; the terminal serializes access to it.

package ansi

import (
	"bufio"
	"io"

	xansi "github.com/charmbracelet/x/ansi"
)

// Output emits control sequences and text. Coordinates are 0-based.
// Implementations are not safe for concurrent use.
type Output interface {
	io.Writer
	io.StringWriter
	Flush() error

	// Jump moves the cursor to column x and row y. A negative y moves
	// within the current row only.
	Jump(x, y int)
	Up(n int)
	Down(n int)
	Right(n int)
	Left(n int)

	ClearLine()
	ClearRight()
	ClearLeft()
	ShowCursor()
	HideCursor()

	// VMargins sets the scroll region to rows top..bottom inclusive.
	VMargins(top, bottom int)
	ResetVMargins()
	// HMargins sets the left/right margins to columns left..right inclusive.
	// They take effect only while EnableHMargins is in force.
	HMargins(left, right int)
	ResetHMargins()
	EnableHMargins()
	DisableHMargins()
	SetOrigin()
	ResetOrigin()

	// VScroll scrolls the margin region. Negative n scrolls up (content
	// moves up, blank rows enter at the bottom); positive n scrolls down.
	VScroll(n int)

	SetForeground(c Color)
	SetBackground(c Color)
	ResetColors()
	// InvalidateColors is called after raw text that may have changed
	// colors behind the tracker's back.
	InvalidateColors()
}

// Stream writes control sequences built by charmbracelet/x/ansi to a
// buffered writer. Write errors are sticky and surface from Flush.
type Stream struct {
	w      *bufio.Writer
	colors Coloration
}

var _ Output = (*Stream)(nil)

// NewStream creates a Stream over w.
func NewStream(w io.Writer) *Stream {
	return &Stream{w: bufio.NewWriterSize(w, 4096)}
}

// Write buffers raw bytes.
func (s *Stream) Write(p []byte) (int, error) { return s.w.Write(p) }

// WriteString buffers raw text.
func (s *Stream) WriteString(str string) (int, error) { return s.w.WriteString(str) }

// Flush sends everything buffered so far.
func (s *Stream) Flush() error { return s.w.Flush() }

// Jump moves the cursor; see Output.
func (s *Stream) Jump(x, y int) {
	if y < 0 {
		s.emit(xansi.CursorHorizontalAbsolute(max(x, 0) + 1))
		return
	}
	s.emit(xansi.CursorPosition(max(x, 0)+1, y+1))
}

// Up moves the cursor up n rows; n <= 0 does nothing.
func (s *Stream) Up(n int) { s.move(n, xansi.CursorUp) }

// Down moves the cursor down n rows.
func (s *Stream) Down(n int) { s.move(n, xansi.CursorDown) }

// Right moves the cursor right n columns.
func (s *Stream) Right(n int) { s.move(n, xansi.CursorForward) }

// Left moves the cursor left n columns.
func (s *Stream) Left(n int) { s.move(n, xansi.CursorBackward) }

// ClearLine erases the whole cursor row.
func (s *Stream) ClearLine() { s.emit(xansi.EraseEntireLine) }

// ClearRight erases from the cursor to the end of the row.
func (s *Stream) ClearRight() { s.emit(xansi.EraseLineRight) }

// ClearLeft erases from the start of the row to the cursor.
func (s *Stream) ClearLeft() { s.emit(xansi.EraseLineLeft) }

// ShowCursor makes the cursor visible.
func (s *Stream) ShowCursor() { s.emit(xansi.SetTextCursorEnableMode) }

// HideCursor hides the cursor.
func (s *Stream) HideCursor() { s.emit(xansi.ResetTextCursorEnableMode) }

// VMargins sets the scroll region; see Output.
func (s *Stream) VMargins(top, bottom int) {
	s.emit(xansi.SetTopBottomMargins(top+1, bottom+1))
}

// ResetVMargins restores the full-height scroll region.
func (s *Stream) ResetVMargins() { s.emit(xansi.SetTopBottomMargins(0, 0)) }

// HMargins sets the left and right margins; see Output.
func (s *Stream) HMargins(left, right int) {
	s.emit(xansi.SetLeftRightMargins(left+1, right+1))
}

// ResetHMargins restores the full-width margins.
func (s *Stream) ResetHMargins() { s.emit(xansi.SetLeftRightMargins(0, 0)) }

// EnableHMargins turns on left/right margin mode (DECLRMM).
func (s *Stream) EnableHMargins() { s.emit(xansi.SetLeftRightMarginMode) }

// DisableHMargins turns off left/right margin mode.
func (s *Stream) DisableHMargins() { s.emit(xansi.ResetLeftRightMarginMode) }

// SetOrigin makes cursor addressing relative to the margins (DECOM).
func (s *Stream) SetOrigin() { s.emit(xansi.SetOriginMode) }

// ResetOrigin makes cursor addressing absolute again.
func (s *Stream) ResetOrigin() { s.emit(xansi.ResetOriginMode) }

// VScroll scrolls the margin region; see Output.
func (s *Stream) VScroll(n int) {
	switch {
	case n < 0:
		s.emit(xansi.ScrollUp(-n))
	case n > 0:
		s.emit(xansi.ScrollDown(n))
	}
}

// SetForeground selects c unless it is already the current foreground.
func (s *Stream) SetForeground(c Color) {
	if !s.colors.Foreground(c) {
		return
	}
	if c == ColorDefault {
		s.emit(xansi.Style{}.DefaultForegroundColor().String())
		return
	}
	s.emit(xansi.Style{}.ForegroundColor(c.xcolor()).String())
}

// SetBackground selects c unless it is already the current background.
func (s *Stream) SetBackground(c Color) {
	if !s.colors.Background(c) {
		return
	}
	if c == ColorDefault {
		s.emit(xansi.Style{}.DefaultBackgroundColor().String())
		return
	}
	s.emit(xansi.Style{}.BackgroundColor(c.xcolor()).String())
}

// ResetColors returns both colors to the terminal defaults.
func (s *Stream) ResetColors() {
	s.emit(xansi.Style{}.DefaultForegroundColor().String())
	s.emit(xansi.Style{}.DefaultBackgroundColor().String())
	s.colors.Reset()
}

// InvalidateColors forgets the tracked colors.
func (s *Stream) InvalidateColors() { s.colors.Forget() }

// Colors returns the colors the stream believes are current.
func (s *Stream) Colors() (fg, bg Color) { return s.colors.Colors() }

func (s *Stream) emit(seq string) { s.w.WriteString(seq) }

func (s *Stream) move(n int, seq func(int) string) {
	if n <= 0 {
		return
	}
	s.emit(seq(n))
}
