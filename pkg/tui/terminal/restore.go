// ABOUTME: RestoreOnPanic and RecoverGoroutine recover panics and put the terminal back in a usable state.
// ABOUTME: Both show the cursor, switch mouse reporting off, and restore the saved device attributes.

package terminal

import (
	"fmt"
	"os"
	"runtime/debug"

	xansi "github.com/charmbracelet/x/ansi"

	"github.com/mauromedda/vtui/internal/log"
)

// resetSequence shows the cursor, resets colors and margins, and disables
// every mouse reporting mode.
var resetSequence = xansi.SetTextCursorEnableMode + xansi.ResetStyle +
	xansi.SetTopBottomMargins(0, 0) + xansi.ResetLeftRightMarginMode + xansi.ResetOriginMode +
	xansi.ResetMode(xansi.X10MouseMode) +
	xansi.ResetMode(xansi.NormalMouseMode) +
	xansi.ResetMode(xansi.HighlightMouseMode) +
	xansi.ResetMode(xansi.ButtonEventMouseMode) +
	xansi.ResetMode(xansi.AnyEventMouseMode) +
	xansi.ResetMode(xansi.SgrExtMouseMode)

// Reset writes the emergency reset sequence and restores the attributes.
func Reset(d Device) error {
	_, werr := d.Write([]byte(resetSequence))
	rerr := d.Restore()
	if rerr != nil {
		return rerr
	}
	return werr
}

// RestoreOnPanic should be deferred at the top of main. On panic it resets
// the device, prints the panic value and stack trace, then exits with code 1.
func RestoreOnPanic(d Device) {
	r := recover()
	if r == nil {
		return
	}

	_ = Reset(d)

	fmt.Fprintf(os.Stderr, "\npanic: %v\n\n%s\n", r, debug.Stack())
	os.Exit(1)
}

// RecoverGoroutine should be deferred at the top of background goroutines
// that run while the terminal is in raw or cbreak mode. Unlike
// RestoreOnPanic it does NOT call os.Exit, allowing the owner to shut down.
func RecoverGoroutine(d Device) {
	r := recover()
	if r == nil {
		return
	}

	_ = Reset(d)

	log.Error("goroutine panic: %v\n%s", r, debug.Stack())
}
