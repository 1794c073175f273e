// ABOUTME: Line is an editable row of runes with a cursor, undo history, and an Emacs-style kill ring
// ABOUTME: Backs the single-line input control; all offsets are in runes

package edit

const historyDepth = 100

type snapshot struct {
	text   []rune
	cursor int
}

// Line holds text and a cursor position between 0 and Len().
type Line struct {
	text   []rune
	cursor int
	ring   Ring
	undo   History[snapshot]
}

// NewLine returns an empty Line.
func NewLine() *Line {
	return &Line{undo: History[snapshot]{limit: historyDepth}}
}

func (l *Line) String() string { return string(l.text) }
func (l *Line) Len() int { return len(l.text) }
func (l *Line) Cursor() int { return l.cursor }

// Runes returns the text; callers must not modify it.
func (l *Line) Runes() []rune { return l.text }

// Set replaces the text and puts the cursor at the end.
func (l *Line) Set(s string) {
	l.save()
	l.text = []rune(s)
	l.cursor = len(l.text)
}

// Insert types r at the cursor.
func (l *Line) Insert(r rune) {
	l.save()
	l.text = append(l.text, 0)
	copy(l.text[l.cursor+1:], l.text[l.cursor:])
	l.text[l.cursor] = r
	l.cursor++
}

// Backspace deletes the rune before the cursor.
func (l *Line) Backspace() bool {
	if l.cursor == 0 {
		return false
	}
	l.save()
	l.text = append(l.text[:l.cursor-1], l.text[l.cursor:]...)
	l.cursor--
	return true
}

// Delete deletes the rune under the cursor.
func (l *Line) Delete() bool {
	if l.cursor >= len(l.text) {
		return false
	}
	l.save()
	l.text = append(l.text[:l.cursor], l.text[l.cursor+1:]...)
	return true
}

// Move shifts the cursor by n runes, clamped to the text.
func (l *Line) Move(n int) {
	l.cursor = max(0, min(len(l.text), l.cursor+n))
}

func (l *Line) Home() { l.cursor = 0 }
func (l *Line) End() { l.cursor = len(l.text) }

// KillToEnd cuts from the cursor to the end into the kill ring.
func (l *Line) KillToEnd() bool {
	if l.cursor >= len(l.text) {
		return false
	}
	l.save()
	l.ring.Push(string(l.text[l.cursor:]))
	l.text = l.text[:l.cursor]
	return true
}

// KillWordBackward cuts the word before the cursor, and any spaces between
// it and the cursor, into the kill ring.
func (l *Line) KillWordBackward() bool {
	if l.cursor == 0 {
		return false
	}
	start := l.cursor
	for start > 0 && l.text[start-1] == ' ' {
		start--
	}
	for start > 0 && l.text[start-1] != ' ' {
		start--
	}
	l.save()
	l.ring.Push(string(l.text[start:l.cursor]))
	l.text = append(l.text[:start], l.text[l.cursor:]...)
	l.cursor = start
	return true
}

// Yank inserts the most recent kill at the cursor.
func (l *Line) Yank() bool {
	s, ok := l.ring.Latest()
	if !ok {
		return false
	}
	l.save()
	ins := []rune(s)
	text := make([]rune, 0, len(l.text)+len(ins))
	text = append(text, l.text[:l.cursor]...)
	text = append(text, ins...)
	l.text = append(text, l.text[l.cursor:]...)
	l.cursor += len(ins)
	return true
}

// Undo reverts the last edit.
func (l *Line) Undo() bool {
	prev, ok := l.undo.Back(l.snapshot())
	if !ok {
		return false
	}
	l.text, l.cursor = prev.text, prev.cursor
	return true
}

// Redo re-applies the last undone edit.
func (l *Line) Redo() bool {
	next, ok := l.undo.Forward(l.snapshot())
	if !ok {
		return false
	}
	l.text, l.cursor = next.text, next.cursor
	return true
}

func (l *Line) snapshot() snapshot {
	return snapshot{text: append([]rune(nil), l.text...), cursor: l.cursor}
}

func (l *Line) save() { l.undo.Record(l.snapshot()) }
