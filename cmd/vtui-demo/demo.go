// ABOUTME: The demo's control tree: header, scrolling log, side panel, input line, status bar
// ABOUTME: Submitted lines go to the log; lines starting with "/" are commands

package main

import (
	"fmt"
	"strings"

	"github.com/mauromedda/vtui/internal/log"
	"github.com/mauromedda/vtui/internal/trace"
	"github.com/mauromedda/vtui/pkg/tui"
	"github.com/mauromedda/vtui/pkg/tui/component"
	"github.com/mauromedda/vtui/pkg/tui/key"
	"github.com/mauromedda/vtui/pkg/tui/keybindings"
	"github.com/mauromedda/vtui/pkg/tui/mouse"
	"github.com/mauromedda/vtui/pkg/tui/theme"
)

const sideWidth = 28

const help = `commands:
/clear        empty the log
/tree         dump the control tree
/keys         list key bindings
/theme NAME   switch theme
/mouse MODE   switch mouse mode
/quit         exit`

type demo struct {
	term   *tui.Terminal
	keys   *keybindings.Manager
	rec    *trace.Recorder
	header *component.Label
	log    *component.LogView
	side   *component.Label
	input  *component.Input
	status *component.Label
}

func newDemo(term *tui.Terminal, keys *keybindings.Manager, rec *trace.Recorder) *demo {
	root := component.NewBox(nil, component.Vertical)
	d := &demo{term: term, keys: keys, rec: rec}
	d.header = component.NewLabel(root, "vtui demo  |  enter submits  |  /quit or ctrl+c exits")
	body := component.NewBox(root, component.Horizontal)
	d.log = component.NewLogView(body, 0)
	d.side = component.NewLabel(body, help)
	d.side.SetWrap(true)
	d.input = component.NewInput(root)
	d.status = component.NewLabel(root, "")

	root.SetName("root")
	d.log.SetName("log")
	d.input.SetName("input")
	root.SetFixed(d.header, 1)
	root.SetFixed(d.input, 1)
	root.SetFixed(d.status, 1)
	body.SetFixed(d.side, sideWidth)
	d.restyle()

	d.input.SetKeymap(keys)
	d.log.SetKeymap(keys)
	d.input.SetPlaceholder("type a message")
	d.input.OnSubmit(d.submit)

	term.SetRoot(root, true)
	if err := term.Focus(d.input); err != nil {
		log.Error("demo: %v", err)
	}
	term.SetKeyPostlistener(d.onKey)
	term.SetMousePostlistener(d.onMouse)
	return d
}

// start paints the first frame and parks the cursor in the input.
func (d *demo) start() {
	d.term.Redraw()
	d.term.JumpToFocused()
}

func (d *demo) restyle() {
	p := theme.Current().Palette
	d.header.SetStyle(p.Accent.Style())
	d.status.SetStyle(p.Muted.Style())
	d.side.SetStyle(p.Border.Style())
}

func (d *demo) onKey(k key.Key) {
	if d.rec != nil {
		d.rec.Key(k)
	}
	d.setStatus("key " + k.String())
}

func (d *demo) onMouse(r mouse.Report) {
	if d.rec != nil {
		d.rec.Mouse(r)
	}
	d.setStatus("mouse " + r.String())
}

func (d *demo) setStatus(s string) {
	d.status.SetText(fmt.Sprintf("%dx%d  %s", d.term.Cols(), d.term.Rows(), s))
	d.term.JumpToFocused()
}

func (d *demo) submit(line string) {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	switch cmd {
	case "":
		return
	case "/quit":
		d.term.Shutdown()
	case "/clear":
		d.log.Clear()
	case "/tree":
		var b strings.Builder
		_ = d.term.DebugTree(&b)
		for _, row := range strings.Split(strings.TrimRight(b.String(), "\n"), "\n") {
			d.log.Append(row)
		}
	case "/keys":
		for _, row := range strings.Split(strings.TrimRight(d.keys.FormatAll(), "\n"), "\n") {
			d.log.Append(row)
		}
	case "/theme":
		th, err := theme.Builtin(arg)
		if err != nil {
			d.log.Append(err.Error())
			return
		}
		d.setTheme(th)
	case "/mouse":
		m, err := mouse.ParseMode(arg)
		if err != nil {
			d.log.Append(err.Error())
			return
		}
		d.term.SetMouseMode(m)
		d.log.Append("mouse mode " + m.String())
	default:
		d.log.Append(line)
	}
}

func (d *demo) setTheme(th *theme.Theme) {
	theme.Set(th)
	d.restyle()
	d.term.Redraw()
	d.term.JumpToFocused()
	d.log.Append("theme " + th.Name)
}

// reloadTheme is the theme file watcher's callback.
func (d *demo) reloadTheme(path string) {
	th, err := theme.LoadFile(path)
	if err != nil {
		log.Warn("demo: reloading theme: %v", err)
		d.log.Append(err.Error())
		return
	}
	d.setTheme(th)
}
