// ABOUTME: Process implements Device over a TTY file pair using golang.org/x/term and termios.
// ABOUTME: Input is polled alongside a self-pipe so a blocked read can be cancelled from another goroutine.

//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package terminal

import (
	"errors"
	"io"
	"os"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Process is a real terminal backed by an input and output file, normally
// os.Stdin and os.Stdout.
type Process struct {
	mu    sync.Mutex
	in    *os.File
	out   *os.File
	inFd  int
	outFd int
	saved *term.State
	mode  Mode

	// Self-pipe: a byte on wakeR wakes a blocked poll.
	wakeR, wakeW int
	cancelOnce   sync.Once
	closeOnce    sync.Once

	// Read buffer, owned by the ReadByte caller.
	rbuf       [256]byte
	rpos, rlen int
}

var _ Device = (*Process)(nil)

// NewProcess wraps in and out. in must be a terminal.
func NewProcess(in, out *os.File) (*Process, error) {
	inFd := int(in.Fd())
	if !term.IsTerminal(inFd) {
		return nil, ErrNotTerminal
	}

	var fds [2]int
	if err := unix.Pipe(fds[:]); err != nil {
		return nil, &DeviceError{Op: "pipe", Err: err}
	}

	return &Process{
		in:    in,
		out:   out,
		inFd:  inFd,
		outFd: int(out.Fd()),
		wakeR: fds[0],
		wakeW: fds[1],
	}, nil
}

// NewProcessTerminal wraps os.Stdin and os.Stdout.
func NewProcessTerminal() (*Process, error) {
	return NewProcess(os.Stdin, os.Stdout)
}

// saveLocked captures the original attributes on the first mode change.
func (p *Process) saveLocked() error {
	if p.saved != nil {
		return nil
	}
	state, err := term.GetState(p.inFd)
	if err != nil {
		return &DeviceError{Op: "get state", Err: err}
	}
	p.saved = state
	return nil
}

// Raw switches the input to raw mode: no echo, no line buffering, no
// signal keys, no output post-processing.
func (p *Process) Raw() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.saveLocked(); err != nil {
		return err
	}
	if _, err := term.MakeRaw(p.inFd); err != nil {
		return &DeviceError{Op: "raw", Err: err}
	}
	p.mode = ModeRaw
	return nil
}

// Cbreak switches the input to character-at-a-time mode without echo.
// Output post-processing stays on. Signal keys are delivered as input so
// the controller's interrupt policy sees them.
func (p *Process) Cbreak() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.saveLocked(); err != nil {
		return err
	}
	tio, err := unix.IoctlGetTermios(p.inFd, ioctlGetTermios)
	if err != nil {
		return &DeviceError{Op: "get termios", Err: err}
	}
	tio.Lflag &^= unix.ICANON | unix.ECHO | unix.ISIG | unix.IEXTEN
	tio.Iflag &^= unix.IXON
	tio.Cc[unix.VMIN] = 1
	tio.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(p.inFd, ioctlSetTermios, tio); err != nil {
		return &DeviceError{Op: "cbreak", Err: err}
	}
	p.mode = ModeCbreak
	return nil
}

// Restore puts back the attributes saved at the first mode change. It is a
// no-op when no mode was ever set and may be called repeatedly.
func (p *Process) Restore() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.saved == nil {
		return nil
	}
	if err := term.Restore(p.inFd, p.saved); err != nil {
		return &DeviceError{Op: "restore", Err: err}
	}
	p.mode = ModeCooked
	return nil
}

// Mode returns the current line discipline.
func (p *Process) Mode() Mode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mode
}

// Size queries the window size of the output, then the input. A zero
// dimension is a real answer. COLUMNS and LINES are used only when neither
// file answers the ioctl.
func (p *Process) Size() (cols, rows int, err error) {
	for _, fd := range []int{p.outFd, p.inFd} {
		ws, werr := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
		if werr == nil {
			return int(ws.Col), int(ws.Row), nil
		}
		err = werr
	}

	c, cerr := strconv.Atoi(os.Getenv("COLUMNS"))
	r, rerr := strconv.Atoi(os.Getenv("LINES"))
	if cerr == nil && rerr == nil && c >= 0 && r >= 0 {
		return c, r, nil
	}
	return 0, 0, &DeviceError{Op: "size", Err: err}
}

// Write sends bytes to the output file.
func (p *Process) Write(b []byte) (int, error) {
	n, err := p.out.Write(b)
	if err != nil {
		return n, &DeviceError{Op: "write", Err: err}
	}
	return n, nil
}

// ReadByte returns the next input byte; see Device.
func (p *Process) ReadByte(timeout time.Duration) (byte, bool, error) {
	if p.rpos < p.rlen {
		b := p.rbuf[p.rpos]
		p.rpos++
		return b, true, nil
	}

	ms := -1
	if timeout >= 0 {
		ms = int(timeout / time.Millisecond)
		if ms == 0 && timeout > 0 {
			ms = 1
		}
	}

	for {
		fds := []unix.PollFd{
			{Fd: int32(p.inFd), Events: unix.POLLIN},
			{Fd: int32(p.wakeR), Events: unix.POLLIN},
		}
		n, err := unix.Poll(fds, ms)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return 0, false, &DeviceError{Op: "poll", Err: err}
		}
		if n == 0 {
			return 0, false, nil
		}
		if fds[1].Revents != 0 {
			return 0, false, ErrClosed
		}
		if fds[0].Revents&unix.POLLNVAL != 0 {
			return 0, false, ErrClosed
		}

		nr, err := unix.Read(p.inFd, p.rbuf[:])
		if errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN) {
			continue
		}
		if err != nil {
			return 0, false, &DeviceError{Op: "read", Err: err}
		}
		if nr == 0 {
			return 0, false, io.EOF
		}
		p.rpos, p.rlen = 1, nr
		return p.rbuf[0], true, nil
	}
}

// Cancel wakes a blocked ReadByte; every later call returns ErrClosed.
func (p *Process) Cancel() {
	p.cancelOnce.Do(func() {
		_, _ = unix.Write(p.wakeW, []byte{0})
	})
}

// Close cancels input and releases the self-pipe. The wrapped files stay open.
func (p *Process) Close() error {
	p.Cancel()
	var err error
	p.closeOnce.Do(func() {
		err = errors.Join(unix.Close(p.wakeR), unix.Close(p.wakeW))
	})
	if err != nil {
		return &DeviceError{Op: "close", Err: err}
	}
	return nil
}
