// ABOUTME: Byte-at-a-time input decoder producing key and mouse events from a terminal stream.
// ABOUTME: Handles lone ESC by timeout, CSI/SS3 sequences, SGR and X10 mouse reports, and multi-byte UTF-8.

package input

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mauromedda/vtui/internal/log"
	"github.com/mauromedda/vtui/pkg/tui/key"
	"github.com/mauromedda/vtui/pkg/tui/mouse"
)

// ErrMalformed marks a sequence the decoder discarded.
var ErrMalformed = errors.New("malformed input sequence")

const (
	// DefaultEscapeTimeout is how long a lone ESC waits for a follow-up byte.
	DefaultEscapeTimeout = 50 * time.Millisecond
	// DefaultSequenceTimeout bounds the gap between bytes inside a sequence.
	DefaultSequenceTimeout = 100 * time.Millisecond

	maxCSILength = 64
	esc          = 0x1b
)

// Source delivers input bytes. A negative timeout blocks. ok is false when
// the timeout elapsed with no byte; err is set when the source failed or closed.
type Source interface {
	ReadByte(timeout time.Duration) (b byte, ok bool, err error)
}

// Kind says which field of an Event is set.
type Kind uint8

const (
	KindKey Kind = iota
	KindMouse
)

// Event is one decoded input event.
type Event struct {
	Kind  Kind
	Key   key.Key
	Mouse mouse.Report
}

func (e Event) String() string {
	if e.Kind == KindMouse {
		return "mouse " + e.Mouse.String()
	}
	return "key " + e.Key.String()
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithEscapeTimeout sets how long a lone ESC waits before it is reported.
func WithEscapeTimeout(d time.Duration) Option {
	return func(dec *Decoder) { dec.escTimeout = d }
}

// WithSequenceTimeout sets the maximum gap between bytes of one sequence.
func WithSequenceTimeout(d time.Duration) Option {
	return func(dec *Decoder) { dec.seqTimeout = d }
}

// Decoder turns a byte Source into Events. It is not safe for concurrent use;
// one goroutine owns it.
type Decoder struct {
	src        Source
	escTimeout time.Duration
	seqTimeout time.Duration

	// unread holds bytes pushed back for re-decoding, consumed front first.
	unread []byte
	// err is a source error seen mid-sequence, returned after the partial event.
	err error
}

// NewDecoder creates a Decoder reading from src.
func NewDecoder(src Source, opts ...Option) *Decoder {
	d := &Decoder{
		src:        src,
		escTimeout: DefaultEscapeTimeout,
		seqTimeout: DefaultSequenceTimeout,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Next blocks until one event is decoded or the source fails. Malformed
// sequences are discarded without producing an event.
func (d *Decoder) Next() (Event, error) {
	for {
		if len(d.unread) == 0 && d.err != nil {
			err := d.err
			d.err = nil
			return Event{}, err
		}

		b, ok, err := d.read(-1)
		if err != nil {
			return Event{}, err
		}
		if !ok {
			continue
		}

		ev, emit := d.decode(b)
		if emit {
			return ev, nil
		}
	}
}

func (d *Decoder) read(timeout time.Duration) (byte, bool, error) {
	if len(d.unread) > 0 {
		b := d.unread[0]
		d.unread = d.unread[1:]
		return b, true, nil
	}
	if d.err != nil {
		return 0, false, nil
	}
	return d.src.ReadByte(timeout)
}

// readFollow reads a byte inside a sequence. A source error is deferred so
// the sequence resolves as if the timeout expired.
func (d *Decoder) readFollow(timeout time.Duration) (byte, bool) {
	b, ok, err := d.read(timeout)
	if err != nil {
		d.err = err
		return 0, false
	}
	return b, ok
}

func (d *Decoder) pushBack(bs ...byte) {
	d.unread = append(append([]byte(nil), bs...), d.unread...)
}

func (d *Decoder) decode(b byte) (Event, bool) {
	switch {
	case b == esc:
		return d.escape()
	case b < 0x20:
		return keyEvent(key.FromControl(b)), true
	case b == 0x7f:
		return keyEvent(key.Named(key.KeyBackspace, key.ModNone)), true
	case b < 0x80:
		return keyEvent(key.Rune(rune(b))), true
	}
	return d.utf8(b)
}

func (d *Decoder) escape() (Event, bool) {
	b, ok := d.readFollow(d.escTimeout)
	if !ok {
		return keyEvent(key.Named(key.KeyEscape, key.ModNone)), true
	}

	switch b {
	case '[':
		return d.csi()
	case 'O':
		return d.ss3()
	case esc:
		return d.altSequence()
	}

	// ESC followed by anything else is that key with alt held.
	ev, emit := d.decode(b)
	if emit && ev.Kind == KindKey {
		ev.Key = ev.Key.With(key.ModAlt)
	}
	return ev, emit
}

// altSequence follows ESC ESC. A CSI or SS3 sequence after the second ESC
// is that key with alt held; anything else leaves alt+escape.
func (d *Decoder) altSequence() (Event, bool) {
	b, ok := d.readFollow(d.escTimeout)
	if !ok {
		return keyEvent(key.Named(key.KeyEscape, key.ModAlt)), true
	}

	var ev Event
	var emit bool
	switch b {
	case '[':
		ev, emit = d.csi()
	case 'O':
		ev, emit = d.ss3()
	default:
		d.pushBack(b)
		return keyEvent(key.Named(key.KeyEscape, key.ModAlt)), true
	}
	if emit && ev.Kind == KindKey {
		ev.Key = ev.Key.With(key.ModAlt)
	}
	return ev, emit
}

func (d *Decoder) csi() (Event, bool) {
	var buf []byte
	sawIntermediate := false

	for len(buf) < maxCSILength {
		b, ok := d.readFollow(d.seqTimeout)
		if !ok {
			// Incomplete: ESC [ is alt+[ and the rest are literal input.
			d.pushBack(buf...)
			return keyEvent(key.Rune('[').With(key.ModAlt)), true
		}

		switch {
		case b == 'M' && len(buf) == 0:
			return d.x10Mouse()
		case b >= 0x40 && b <= 0x7e:
			return d.dispatchCSI(string(buf), b)
		case b >= 0x30 && b <= 0x3f:
			if sawIntermediate {
				return d.malformed("csi", buf, b)
			}
			buf = append(buf, b)
		case b >= 0x20 && b <= 0x2f:
			sawIntermediate = true
			buf = append(buf, b)
		default:
			if b == esc {
				d.pushBack(b)
			}
			return d.malformed("csi", buf, b)
		}
	}
	return d.malformed("csi", buf, 0)
}

func (d *Decoder) dispatchCSI(params string, final byte) (Event, bool) {
	if strings.HasPrefix(params, "<") && (final == 'M' || final == 'm') {
		return d.sgrMouse(params[1:], final)
	}
	k, ok := key.ParseCSI(params, final)
	if !ok {
		return d.malformed("csi", []byte(params), final)
	}
	return keyEvent(k), true
}

func (d *Decoder) sgrMouse(params string, final byte) (Event, bool) {
	fields := strings.Split(params, ";")
	if len(fields) != 3 {
		return d.malformed("sgr mouse", []byte(params), final)
	}
	var vals [3]int
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 {
			return d.malformed("sgr mouse", []byte(params), final)
		}
		vals[i] = n
	}
	if vals[1] < 1 || vals[2] < 1 {
		return d.malformed("sgr mouse", []byte(params), final)
	}
	return Event{Kind: KindMouse, Mouse: mouse.Decode(vals[0], final, vals[1], vals[2])}, true
}

// x10Mouse reads the three payload bytes of CSI M Cb Cx Cy. Each byte is
// offset by 32 and the coordinates are 1-based.
func (d *Decoder) x10Mouse() (Event, bool) {
	var payload [3]byte
	for i := range payload {
		b, ok := d.readFollow(d.seqTimeout)
		if !ok {
			return d.malformed("x10 mouse", payload[:i], 'M')
		}
		payload[i] = b
	}
	code, x, y := int(payload[0])-32, int(payload[1])-32, int(payload[2])-32
	if code < 0 || x < 1 || y < 1 {
		return d.malformed("x10 mouse", payload[:], 'M')
	}
	return Event{Kind: KindMouse, Mouse: mouse.Decode(code, 'M', x, y)}, true
}

func (d *Decoder) ss3() (Event, bool) {
	b, ok := d.readFollow(d.seqTimeout)
	if !ok {
		return keyEvent(key.Rune('O').With(key.ModAlt)), true
	}
	k, ok := key.ParseSS3(b)
	if !ok {
		return d.malformed("ss3", nil, b)
	}
	return keyEvent(k), true
}

func (d *Decoder) utf8(lead byte) (Event, bool) {
	n := sequenceLength(lead)
	if n == 0 {
		// Stray continuation byte or a lead no UTF-8 sequence starts with.
		return d.malformed("utf-8", nil, lead)
	}

	buf := make([]byte, 1, utf8.UTFMax)
	buf[0] = lead
	for len(buf) < n {
		b, ok := d.readFollow(d.seqTimeout)
		if !ok {
			log.Debug("input: dropped partial utf-8 sequence % x", buf)
			return Event{}, false
		}
		if b&0xc0 != 0x80 {
			d.pushBack(b)
			return keyEvent(key.Rune(rune(lead))), true
		}
		buf = append(buf, b)
	}

	r, _ := utf8.DecodeRune(buf)
	return keyEvent(key.Rune(r)), true
}

func (d *Decoder) malformed(kind string, buf []byte, final byte) (Event, bool) {
	log.Debug("input: %v", fmt.Errorf("%w: %s %q final 0x%02x", ErrMalformed, kind, buf, final))
	return Event{}, false
}

// sequenceLength returns the UTF-8 length announced by a lead byte, or 0
// when b cannot start a multi-byte sequence.
func sequenceLength(b byte) int {
	switch {
	case b&0xe0 == 0xc0:
		return 2
	case b&0xf0 == 0xe0:
		return 3
	case b&0xf8 == 0xf0:
		return 4
	}
	return 0
}

func keyEvent(k key.Key) Event {
	return Event{Kind: KindKey, Key: k}
}
