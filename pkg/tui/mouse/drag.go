// ABOUTME: Tracks which button is held so motion and releases can be attributed to it.

package mouse

// DragState remembers the button of the last press until its release.
// The zero value is not dragging.
type DragState struct {
	Dragging bool
	Button   Button
}

// Track updates the state from r and returns r with any missing button
// filled in. A release without a reported button is attributed to the held
// button, or to the left button when nothing is held. Motion without a
// reported button while a button is held becomes a drag.
func (d *DragState) Track(r Report) Report {
	switch r.Action {
	case ActionDown:
		d.Dragging = true
		d.Button = r.Button
	case ActionUp:
		if r.Button == ButtonNone {
			r.Button = d.Button
			if r.Button == ButtonNone {
				r.Button = ButtonLeft
			}
		}
		d.Dragging = false
		d.Button = ButtonNone
	case ActionMove:
		if d.Dragging {
			r.Action = ActionDrag
			r.Button = d.Button
		}
	case ActionDrag:
		if !d.Dragging {
			d.Dragging = true
			d.Button = r.Button
		}
	}
	return r
}
