// ABOUTME: Bounded undo/redo history and a fixed-size kill ring

package edit

// History keeps states for undo and redo. The zero value is unbounded.
type History[S any] struct {
	past   []S
	future []S
	limit  int
}

// Record saves the state before an edit and forgets anything undone.
func (h *History[S]) Record(s S) {
	if h.limit > 0 && len(h.past) >= h.limit {
		h.past = h.past[1:]
	}
	h.past = append(h.past, s)
	h.future = h.future[:0]
}

// Back returns the state before the last edit. current is kept so Forward
// can return to it.
func (h *History[S]) Back(current S) (S, bool) {
	var zero S
	if len(h.past) == 0 {
		return zero, false
	}
	s := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append(h.future, current)
	return s, true
}

// Forward undoes the last Back.
func (h *History[S]) Forward(current S) (S, bool) {
	var zero S
	if len(h.future) == 0 {
		return zero, false
	}
	s := h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	h.past = append(h.past, current)
	return s, true
}

const ringSize = 32

// Ring is a kill ring holding the most recent cuts.
type Ring struct {
	entries []string
	next    int
}

// Push stores s, overwriting the oldest entry once full.
func (r *Ring) Push(s string) {
	if len(r.entries) < ringSize {
		r.entries = append(r.entries, s)
	} else {
		r.entries[r.next] = s
	}
	r.next = (r.next + 1) % ringSize
}

// Latest returns the most recent entry.
func (r *Ring) Latest() (string, bool) {
	if len(r.entries) == 0 {
		return "", false
	}
	return r.entries[(r.next-1+len(r.entries))%len(r.entries)], true
}

func (r *Ring) Len() int { return len(r.entries) }
