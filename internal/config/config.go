// ABOUTME: YAML configuration for the demo terminal: modes, timeouts, theme, logging, tracing
// ABOUTME: Missing files yield defaults; Resolve turns names into typed values

package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mauromedda/vtui/internal/log"
	"github.com/mauromedda/vtui/pkg/tui/key"
	"github.com/mauromedda/vtui/pkg/tui/keybindings"
	"github.com/mauromedda/vtui/pkg/tui/mouse"
	"github.com/mauromedda/vtui/pkg/tui/theme"
)

// Config is the file form of the configuration. Durations and names stay
// strings here; Resolve validates them.
type Config struct {
	Mode            string      `yaml:"mode"`
	Mouse           string      `yaml:"mouse"`
	EscapeTimeout   string      `yaml:"escape_timeout"`
	SequenceTimeout string      `yaml:"sequence_timeout"`
	WatchSize       bool        `yaml:"watch_size"`
	InterruptKey    string      `yaml:"interrupt_key"`
	Theme           string      `yaml:"theme"`
	ThemeFile       string      `yaml:"theme_file"`
	Keys            KeyConfig   `yaml:"keys"`
	Log             LogConfig   `yaml:"log"`
	Trace           TraceConfig `yaml:"trace"`
}

// KeyConfig maps action names to key names, replacing the defaults of the
// actions it mentions.
type KeyConfig map[string][]string

// LogConfig configures internal/log.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// TraceConfig configures the JSON-lines input trace.
type TraceConfig struct {
	File string `yaml:"file"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Mode:            "cbreak",
		Mouse:           "none",
		EscapeTimeout:   "50ms",
		SequenceTimeout: "100ms",
		WatchSize:       true,
		InterruptKey:    "ctrl+c",
		Theme:           "default",
		Log:             LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug("config: %s not found, using defaults", path)
			return cfg, nil
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	ResolveEnvVars(cfg)
	return cfg, nil
}

// Settings is a validated Config.
type Settings struct {
	Raw             bool
	Mouse           mouse.Mode
	EscapeTimeout   time.Duration
	SequenceTimeout time.Duration
	WatchSize       bool
	InterruptKey    key.Key
	Theme           *theme.Theme
	ThemeFile       string
	Keymap          *keybindings.Manager
	LogLevel        slog.Level
	LogFile         string
	TraceFile       string
}

// Resolve validates every field and returns the typed settings. The theme
// file, when set, takes precedence over the theme name.
func (c *Config) Resolve() (*Settings, error) {
	s := &Settings{
		WatchSize: c.WatchSize,
		ThemeFile: c.ThemeFile,
		LogFile:   c.Log.File,
		TraceFile: c.Trace.File,
	}

	switch c.Mode {
	case "raw":
		s.Raw = true
	case "cbreak", "":
	default:
		return nil, fmt.Errorf("mode: unknown mode %q", c.Mode)
	}

	var err error
	if s.Mouse, err = mouse.ParseMode(c.Mouse); err != nil {
		return nil, fmt.Errorf("mouse: %w", err)
	}
	if s.EscapeTimeout, err = parseTimeout(c.EscapeTimeout); err != nil {
		return nil, fmt.Errorf("escape_timeout: %w", err)
	}
	if s.SequenceTimeout, err = parseTimeout(c.SequenceTimeout); err != nil {
		return nil, fmt.Errorf("sequence_timeout: %w", err)
	}
	if s.InterruptKey, err = key.ParseName(c.InterruptKey); err != nil {
		return nil, fmt.Errorf("interrupt_key: %w", err)
	}
	if s.LogLevel, err = log.ParseLevel(c.Log.Level); err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}

	if s.Keymap, err = resolveKeys(c.Keys); err != nil {
		return nil, fmt.Errorf("keys: %w", err)
	}

	if c.ThemeFile != "" {
		s.Theme, err = theme.LoadFile(c.ThemeFile)
	} else {
		s.Theme, err = theme.Builtin(c.Theme)
	}
	if err != nil {
		return nil, fmt.Errorf("theme: %w", err)
	}
	return s, nil
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	_, err := c.Resolve()
	return err
}

func resolveKeys(kc KeyConfig) (*keybindings.Manager, error) {
	if len(kc) == 0 {
		return keybindings.Default(), nil
	}
	overrides := make(keybindings.Bindings, len(kc))
	for action, names := range kc {
		overrides[keybindings.Action(action)] = names
	}
	m, err := keybindings.New(overrides)
	if err != nil {
		return nil, err
	}
	if conflicts := m.Conflicts(); len(conflicts) > 0 {
		return nil, fmt.Errorf("%s", conflicts[0])
	}
	return m, nil
}

func parseTimeout(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", s)
	}
	return d, nil
}
