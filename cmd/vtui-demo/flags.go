// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Flags override the matching config file fields when set

package main

import (
	"flag"

	"github.com/mauromedda/vtui/internal/config"
)

type cliArgs struct {
	config    string
	raw       bool
	mouse     string
	theme     string
	themeFile string
	trace     string
	logFile   string
	logLevel  string
	version   bool
}

func parseFlags() cliArgs {
	var args cliArgs

	flag.StringVar(&args.config, "config", "", "Config file (default $"+config.EnvConfig+" or ~/.vtui/config.yaml)")
	flag.BoolVar(&args.raw, "raw", false, "Use raw mode instead of cbreak")
	flag.StringVar(&args.mouse, "mouse", "", "Mouse mode: none, basic, normal, highlight, motion, any")
	flag.StringVar(&args.theme, "theme", "", "Built-in theme name")
	flag.StringVar(&args.themeFile, "theme-file", "", "YAML theme file, reloaded when it changes")
	flag.StringVar(&args.trace, "trace", "", "Record input events to this JSON-lines file")
	flag.StringVar(&args.logFile, "log-file", "", "Write logs to this file instead of stderr")
	flag.StringVar(&args.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flag.BoolVar(&args.version, "version", false, "Show version and exit")

	flag.Parse()
	return args
}

// apply copies the flags that were set onto c.
func (a cliArgs) apply(c *config.Config) {
	if a.raw {
		c.Mode = "raw"
	}
	if a.mouse != "" {
		c.Mouse = a.mouse
	}
	if a.theme != "" {
		c.Theme = a.theme
	}
	if a.themeFile != "" {
		c.ThemeFile = a.themeFile
	}
	if a.trace != "" {
		c.Trace.File = a.trace
	}
	if a.logFile != "" {
		c.Log.File = a.logFile
	}
	if a.logLevel != "" {
		c.Log.Level = a.logLevel
	}
}
