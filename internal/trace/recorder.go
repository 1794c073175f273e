// ABOUTME: Recorder appends dispatched input events to a JSON-lines file
// ABOUTME: Installed as the terminal's key and mouse post-listeners

package trace

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mailru/easyjson"

	"github.com/mauromedda/vtui/internal/log"
	"github.com/mauromedda/vtui/pkg/tui"
	"github.com/mauromedda/vtui/pkg/tui/key"
	"github.com/mauromedda/vtui/pkg/tui/mouse"
)

// Recorder writes one Event per line. It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	w      *bufio.Writer
	closer io.Closer
	start  time.Time
	now    func() time.Time
	err    error
}

// NewRecorder records to w. Times are measured from now.
func NewRecorder(w io.Writer) *Recorder {
	r := &Recorder{w: bufio.NewWriter(w), now: time.Now}
	r.start = r.now()
	if c, ok := w.(io.Closer); ok {
		r.closer = c
	}
	return r
}

// Create truncates or creates path and records to it.
func Create(path string) (*Recorder, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return nil, fmt.Errorf("creating trace file: %w", err)
	}
	return NewRecorder(f), nil
}

// Install makes r observe every key and mouse event t dispatches.
func (r *Recorder) Install(t *tui.Terminal) {
	t.SetKeyPostlistener(r.Key)
	t.SetMousePostlistener(r.Mouse)
}

// Key records k.
func (r *Recorder) Key(k key.Key) { r.record(Event{Kind: KindKey, Key: k}) }

// Mouse records m.
func (r *Recorder) Mouse(m mouse.Report) { r.record(Event{Kind: KindMouse, Mouse: m}) }

// record stops at the first write error; Err and Close report it.
func (r *Recorder) record(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return
	}
	e.At = r.now().Sub(r.start)
	if _, err := easyjson.MarshalToWriter(e, r.w); err != nil {
		r.fail(err)
		return
	}
	if err := r.w.WriteByte('\n'); err != nil {
		r.fail(err)
	}
}

func (r *Recorder) fail(err error) {
	r.err = fmt.Errorf("writing trace: %w", err)
	log.Warn("trace: %v; recording stopped", err)
}

// Flush writes buffered events.
func (r *Recorder) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if err := r.w.Flush(); err != nil {
		r.err = fmt.Errorf("flushing trace: %w", err)
	}
	return r.err
}

// Close flushes and closes the underlying writer when it is a Closer.
func (r *Recorder) Close() error {
	err := r.Flush()
	if r.closer != nil {
		err = errors.Join(err, r.closer.Close())
	}
	return err
}
