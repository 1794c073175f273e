// ABOUTME: Demo entry point: loads config, takes over the terminal, runs the control tree
// ABOUTME: Restores the terminal on exit, on SIGINT/SIGTERM, and on panic

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/mauromedda/vtui/internal/config"
	"github.com/mauromedda/vtui/internal/log"
	"github.com/mauromedda/vtui/internal/trace"
	"github.com/mauromedda/vtui/pkg/tui"
	"github.com/mauromedda/vtui/pkg/tui/terminal"
	"github.com/mauromedda/vtui/pkg/tui/theme"
)

var version = "dev"

func main() {
	args := parseFlags()

	if args.version {
		fmt.Printf("vtui-demo %s\n", version)
		os.Exit(0)
	}

	if err := run(args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args cliArgs) (err error) {
	cfg, err := config.Load(config.Path(args.config))
	if err != nil {
		return err
	}
	args.apply(cfg)
	settings, err := cfg.Resolve()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log.SetLevel(settings.LogLevel)
	if settings.LogFile != "" {
		f, err := os.OpenFile(settings.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		defer log.SetOutput(log.SetOutput(f))
	}
	theme.Set(settings.Theme)

	var rec *trace.Recorder
	if settings.TraceFile != "" {
		if rec, err = trace.Create(settings.TraceFile); err != nil {
			return err
		}
		defer func() { err = errors.Join(err, rec.Close()) }()
	}

	dev, err := terminal.NewProcessTerminal()
	if err != nil {
		return err
	}
	defer terminal.RestoreOnPanic(dev)

	term, err := tui.New(dev,
		tui.WithEscapeTimeout(settings.EscapeTimeout),
		tui.WithSequenceTimeout(settings.SequenceTimeout),
		tui.WithInterruptKey(settings.InterruptKey),
	)
	if err != nil {
		_ = dev.Close()
		return err
	}
	defer func() { err = errors.Join(err, term.Close()) }()

	if settings.Raw {
		err = term.Raw()
	} else {
		err = term.Cbreak()
	}
	if err != nil {
		return err
	}
	term.SetMouseMode(settings.Mouse)
	if settings.WatchSize {
		term.WatchSize()
	}

	d := newDemo(term, settings.Keymap, rec)
	d.start()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		select {
		case <-ctx.Done():
			term.Shutdown()
		case <-term.Done():
		}
		stop()
		return term.Join()
	})
	if settings.ThemeFile != "" {
		w := config.NewWatcher(0, d.reloadTheme)
		w.Add(settings.ThemeFile)
		g.Go(func() error { return w.Run(ctx) })
	}

	term.StartInput()
	log.Info("vtui-demo: running %dx%d, mouse=%s", term.Cols(), term.Rows(), settings.Mouse)
	return g.Wait()
}
