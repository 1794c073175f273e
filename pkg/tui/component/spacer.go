// ABOUTME: Spacer is an empty control that blanks its rectangle; used to pad Box layouts

package component

import "github.com/mauromedda/vtui/pkg/tui"

// Spacer occupies space and draws nothing but blanks.
type Spacer struct {
	*tui.Base
}

// NewSpacer creates a Spacer under parent.
func NewSpacer(parent tui.Parent) *Spacer {
	s := &Spacer{}
	s.Base = tui.NewBase(s)
	tui.Attach(parent, s)
	return s
}

func (s *Spacer) Draw() { s.ClearRect() }
