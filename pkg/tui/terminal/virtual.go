// ABOUTME: Virtual implements Device for testing without a real TTY.
// ABOUTME: Captures output, tracks mode transitions, and serves input fed by the test.

package terminal

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"
)

// Virtual is a fake Device for unit tests. Input is queued with Feed and
// output is captured for inspection.
type Virtual struct {
	mu      sync.Mutex
	buf     bytes.Buffer
	cols    int
	rows    int
	mode    Mode
	sizeErr error

	rawCount     int
	cbreakCount  int
	restoreCount int
	closed       bool

	input      chan byte
	inputOnce  sync.Once
	cancel     chan struct{}
	cancelOnce sync.Once
}

var _ Device = (*Virtual)(nil)

// NewVirtual returns a Virtual with the given dimensions.
func NewVirtual(cols, rows int) *Virtual {
	return &Virtual{
		cols:   cols,
		rows:   rows,
		input:  make(chan byte, 4096),
		cancel: make(chan struct{}),
	}
}

// Raw records a raw-mode entry.
func (v *Virtual) Raw() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.mode = ModeRaw
	v.rawCount++
	return nil
}

// Cbreak records a cbreak-mode entry.
func (v *Virtual) Cbreak() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.mode = ModeCbreak
	v.cbreakCount++
	return nil
}

// Restore records a return to the saved attributes.
func (v *Virtual) Restore() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.mode = ModeCooked
	v.restoreCount++
	return nil
}

// Size returns the configured dimensions, or the error set by SetSizeError.
func (v *Virtual) Size() (cols, rows int, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.sizeErr != nil {
		return 0, 0, &DeviceError{Op: "size", Err: v.sizeErr}
	}
	return v.cols, v.rows, nil
}

// Write appends data to the internal buffer.
func (v *Virtual) Write(p []byte) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	n, err := v.buf.Write(p)
	if err != nil {
		return n, fmt.Errorf("writing to virtual buffer: %w", err)
	}
	return n, nil
}

// ReadByte serves bytes queued by Feed; see Device.
func (v *Virtual) ReadByte(timeout time.Duration) (byte, bool, error) {
	var expired <-chan time.Time
	if timeout >= 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case <-v.cancel:
		return 0, false, ErrClosed
	default:
	}

	select {
	case b, ok := <-v.input:
		if !ok {
			return 0, false, io.EOF
		}
		return b, true, nil
	case <-v.cancel:
		return 0, false, ErrClosed
	case <-expired:
		return 0, false, nil
	}
}

// Cancel makes pending and future reads return ErrClosed.
func (v *Virtual) Cancel() {
	v.cancelOnce.Do(func() { close(v.cancel) })
}

// Close cancels input.
func (v *Virtual) Close() error {
	v.Cancel()
	v.mu.Lock()
	v.closed = true
	v.mu.Unlock()
	return nil
}

// --- Test helpers (not part of Device interface) ---

// Feed queues input bytes. It must not be called after CloseInput.
func (v *Virtual) Feed(data string) {
	for i := 0; i < len(data); i++ {
		v.input <- data[i]
	}
}

// CloseInput makes reads return io.EOF once queued input is drained.
func (v *Virtual) CloseInput() {
	v.inputOnce.Do(func() { close(v.input) })
}

// Output returns everything written so far.
func (v *Virtual) Output() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.buf.String()
}

// Reset clears the output buffer.
func (v *Virtual) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.buf.Reset()
}

// Mode returns the current line discipline.
func (v *Virtual) Mode() Mode {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.mode
}

// RawCount returns how many times Raw was called.
func (v *Virtual) RawCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.rawCount
}

// CbreakCount returns how many times Cbreak was called.
func (v *Virtual) CbreakCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.cbreakCount
}

// RestoreCount returns how many times Restore was called.
func (v *Virtual) RestoreCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.restoreCount
}

// Closed reports whether Close was called.
func (v *Virtual) Closed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.closed
}

// SetSize updates the dimensions reported by Size.
func (v *Virtual) SetSize(cols, rows int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.cols = cols
	v.rows = rows
}

// SetSizeError makes Size fail with err until cleared with nil.
func (v *Virtual) SetSizeError(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.sizeErr = err
}
