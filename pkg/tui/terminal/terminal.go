// ABOUTME: Defines the Device interface for terminal modes, size queries, byte input, and output.
// ABOUTME: Abstracts the TTY so the controller can run against a real process terminal or a virtual one.

package terminal

import (
	"errors"
	"fmt"
	"io"
	"time"
)

var (
	// ErrClosed is returned by ReadByte after Cancel or Close.
	ErrClosed = errors.New("terminal device closed")
	// ErrNotTerminal is returned when the input is not a TTY.
	ErrNotTerminal = errors.New("not a terminal")
)

// Mode is the line discipline a Device is in.
type Mode uint8

const (
	ModeCooked Mode = iota
	ModeCbreak
	ModeRaw
)

func (m Mode) String() string {
	switch m {
	case ModeCbreak:
		return "cbreak"
	case ModeRaw:
		return "raw"
	}
	return "cooked"
}

// Device abstracts low-level terminal operations.
//
// The attributes in force before the first Raw or Cbreak call are saved and
// Restore puts them back. ReadByte is called from a single goroutine; a
// negative timeout blocks, and ok is false when the timeout elapsed.
type Device interface {
	io.Writer
	Raw() error
	Cbreak() error
	Restore() error
	Size() (cols, rows int, err error)
	ReadByte(timeout time.Duration) (b byte, ok bool, err error)
	// Cancel makes a pending or future ReadByte return ErrClosed.
	Cancel()
	Close() error
}

// DeviceError wraps a failed OS-level terminal operation.
type DeviceError struct {
	Op  string
	Err error
}

func (e *DeviceError) Error() string { return "terminal " + e.Op + ": " + e.Err.Error() }

func (e *DeviceError) Unwrap() error { return e.Err }

// ParseMode maps "raw" or "cbreak" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "raw":
		return ModeRaw, nil
	case "cbreak", "":
		return ModeCbreak, nil
	}
	return ModeCooked, fmt.Errorf("unknown terminal mode %q", s)
}

// Enter puts d into m. ModeCooked restores the saved attributes.
func Enter(d Device, m Mode) error {
	switch m {
	case ModeRaw:
		return d.Raw()
	case ModeCbreak:
		return d.Cbreak()
	}
	return d.Restore()
}
