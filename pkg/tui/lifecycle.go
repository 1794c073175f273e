// ABOUTME: Input worker, shutdown, and teardown of a Terminal
// ABOUTME: The worker decodes device bytes and dispatches them until the device is cancelled or closed

package tui

import (
	"errors"
	"fmt"
	"io"

	"github.com/mauromedda/vtui/internal/log"
	"github.com/mauromedda/vtui/pkg/tui/input"
	"github.com/mauromedda/vtui/pkg/tui/mouse"
	"github.com/mauromedda/vtui/pkg/tui/terminal"
)

// StartInput starts the input worker. Calling it again is a no-op.
func (t *Terminal) StartInput() {
	if !t.started.CompareAndSwap(false, true) {
		return
	}
	t.group.Go(t.workInput)
}

// Done is closed once the terminal has begun shutting down.
func (t *Terminal) Done() <-chan struct{} { return t.ctx.Done() }

// Shutdown asks the input worker to stop. It does not wait; see Join.
func (t *Terminal) Shutdown() {
	t.cancel()
	t.dev.Cancel()
}

// Join waits for the input worker and returns its error, if any.
func (t *Terminal) Join() error { return t.group.Wait() }

// Close turns mouse reporting off, restores the device, stops the worker
// and closes the device. It is safe to call more than once.
func (t *Terminal) Close() error {
	t.closeOnce.Do(func() {
		var errs []error

		t.mu.Lock()
		mode := t.mouseMode
		t.mouseMode = mouse.ModeNone
		unwatch := t.unwatch
		t.unwatch = nil
		t.mu.Unlock()

		t.outputMu.Lock()
		_, _ = t.out.WriteString(mode.Disable())
		t.out.ResetColors()
		t.out.ShowCursor()
		if err := t.out.Flush(); err != nil {
			errs = append(errs, fmt.Errorf("flush: %w", err))
		}
		t.outputMu.Unlock()

		if err := t.dev.Restore(); err != nil {
			log.Warn("terminal: restore: %v", err)
			errs = append(errs, fmt.Errorf("restore: %w", err))
		}

		t.Shutdown()
		if err := t.Join(); err != nil {
			errs = append(errs, err)
		}
		if unwatch != nil {
			unwatch()
		}
		if err := t.dev.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close: %w", err))
		}
		t.closeErr = errors.Join(errs...)
	})
	return t.closeErr
}

func (t *Terminal) workInput() error {
	defer t.cancel()
	defer terminal.RecoverGoroutine(t.dev)

	for {
		if t.ctx.Err() != nil {
			return nil
		}
		ev, err := t.dec.Next()
		if err != nil {
			if errors.Is(err, terminal.ErrClosed) || errors.Is(err, io.EOF) {
				log.Debug("terminal: input stopped: %v", err)
				return nil
			}
			return fmt.Errorf("terminal input: %w", err)
		}
		if t.ctx.Err() != nil {
			return nil
		}

		switch ev.Kind {
		case input.KindKey:
			t.SendKey(ev.Key)
		case input.KindMouse:
			t.SendMouse(ev.Mouse)
		}
	}
}

// HandleResize re-reads the device size, lays the root out over the whole
// screen and redraws. It runs on the resize listener goroutine.
func (t *Terminal) HandleResize() {
	t.winchMu.Lock()
	defer t.winchMu.Unlock()

	cols, rows, err := t.dev.Size()
	if err != nil {
		log.Warn("terminal: size: %v", err)
		return
	}
	t.mu.Lock()
	t.cols, t.rows = cols, rows
	t.mu.Unlock()

	log.Debug("terminal: resized to %dx%d", cols, rows)
	t.Redraw()
}
