// ABOUTME: Trace events: one dispatched key or mouse report with its offset from recording start
// ABOUTME: Hand-written easyjson marshalers keep the hot input path free of reflection

package trace

import (
	"fmt"
	"time"

	"github.com/mailru/easyjson/jlexer"
	"github.com/mailru/easyjson/jwriter"

	"github.com/mauromedda/vtui/pkg/tui/key"
	"github.com/mauromedda/vtui/pkg/tui/mouse"
)

// Kind tells which field of an Event is set.
type Kind string

const (
	KindKey   Kind = "key"
	KindMouse Kind = "mouse"
)

// Event is one line of a trace file.
//
//	{"us":1520,"kind":"key","key":"ctrl+x"}
//	{"us":2210,"kind":"mouse","action":"down","button":"left","mods":0,"x":3,"y":7}
type Event struct {
	At    time.Duration
	Kind  Kind
	Key   key.Key
	Mouse mouse.Report
}

var (
	actionByName = make(map[string]mouse.Action)
	buttonByName = make(map[string]mouse.Button)
)

func init() {
	for a := mouse.ActionMove; a <= mouse.ActionScrollDown; a++ {
		actionByName[a.String()] = a
	}
	for b := mouse.ButtonNone; b <= mouse.ButtonMiddle; b++ {
		buttonByName[b.String()] = b
	}
}

// MarshalEasyJSON writes e as a JSON object.
func (e Event) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawString(`{"us":`)
	w.Int64(e.At.Microseconds())
	w.RawString(`,"kind":`)
	w.String(string(e.Kind))
	switch e.Kind {
	case KindKey:
		w.RawString(`,"key":`)
		w.String(e.Key.String())
	case KindMouse:
		w.RawString(`,"action":`)
		w.String(e.Mouse.Action.String())
		w.RawString(`,"button":`)
		w.String(e.Mouse.Button.String())
		w.RawString(`,"mods":`)
		w.Int(int(e.Mouse.Mods))
		w.RawString(`,"x":`)
		w.Int(e.Mouse.X)
		w.RawString(`,"y":`)
		w.Int(e.Mouse.Y)
	}
	w.RawByte('}')
}

// MarshalJSON implements json.Marshaler.
func (e Event) MarshalJSON() ([]byte, error) {
	w := jwriter.Writer{}
	e.MarshalEasyJSON(&w)
	return w.Buffer.BuildBytes(), w.Error
}

// UnmarshalEasyJSON reads an object written by MarshalEasyJSON. Unknown
// fields are skipped.
func (e *Event) UnmarshalEasyJSON(in *jlexer.Lexer) {
	isTopLevel := in.IsStart()
	if in.IsNull() {
		if isTopLevel {
			in.Consumed()
		}
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		field := in.UnsafeFieldName(false)
		in.WantColon()
		if in.IsNull() {
			in.Skip()
			in.WantComma()
			continue
		}
		switch field {
		case "us":
			e.At = time.Duration(in.Int64()) * time.Microsecond
		case "kind":
			e.Kind = Kind(in.String())
		case "key":
			k, err := key.ParseName(in.String())
			if err != nil {
				in.AddError(err)
			}
			e.Key = k
		case "action":
			name := in.String()
			a, ok := actionByName[name]
			if !ok {
				in.AddError(fmt.Errorf("unknown mouse action %q", name))
			}
			e.Mouse.Action = a
		case "button":
			name := in.String()
			b, ok := buttonByName[name]
			if !ok {
				in.AddError(fmt.Errorf("unknown mouse button %q", name))
			}
			e.Mouse.Button = b
		case "mods":
			e.Mouse.Mods = key.ModSet(in.Int())
		case "x":
			e.Mouse.X = in.Int()
		case "y":
			e.Mouse.Y = in.Int()
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
	if isTopLevel {
		in.Consumed()
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Event) UnmarshalJSON(data []byte) error {
	l := jlexer.Lexer{Data: data}
	e.UnmarshalEasyJSON(&l)
	return l.Error()
}

// Encode returns the bytes a terminal would send for e, so a trace can be
// fed back through the input decoder.
func (e Event) Encode() []byte {
	switch e.Kind {
	case KindKey:
		return key.Encode(e.Key)
	case KindMouse:
		return []byte(e.Mouse.Encode())
	}
	return nil
}
