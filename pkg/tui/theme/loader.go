// ABOUTME: YAML theme file loading; roles left out of the file keep the base theme's values

package theme

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mauromedda/vtui/pkg/tui/ansi"
)

type roleFile struct {
	Fg   string `yaml:"fg"`
	Bg   string `yaml:"bg"`
	Bold *bool  `yaml:"bold"`
}

type themeFile struct {
	Name    string               `yaml:"name"`
	Base    string               `yaml:"base"`
	Dark    *bool                `yaml:"dark"`
	Palette map[string]*roleFile `yaml:"palette"`
}

// LoadFile reads a YAML theme. The file may name a built-in "base" whose
// palette fills in roles it leaves out:
//
//	name: ocean
//	base: dark
//	palette:
//	  accent: {fg: cyan, bold: true}
func LoadFile(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme file: %w", err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("theme file %s: %w", path, err)
	}
	return t, nil
}

// Parse decodes a YAML theme document.
func Parse(data []byte) (*Theme, error) {
	var tf themeFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, err
	}

	base := builtins["default"]
	if tf.Base != "" {
		b, err := Builtin(tf.Base)
		if err != nil {
			return nil, err
		}
		base = b
	}

	p := base.Palette
	roles := map[string]*Role{
		"text":   &p.Text,
		"muted":  &p.Muted,
		"accent": &p.Accent,
		"focus":  &p.Focus,
		"border": &p.Border,
		"error":  &p.Error,
	}
	for name, rf := range tf.Palette {
		dst, ok := roles[name]
		if !ok {
			return nil, fmt.Errorf("unknown role %q", name)
		}
		if rf == nil {
			continue
		}
		if err := rf.apply(dst); err != nil {
			return nil, fmt.Errorf("role %s: %w", name, err)
		}
	}

	name := tf.Name
	if name == "" {
		name = base.Name
	}
	dark := base.Dark
	if tf.Dark != nil {
		dark = *tf.Dark
	}
	return &Theme{Name: name, Dark: dark, Palette: p}, nil
}

func (rf *roleFile) apply(r *Role) error {
	if rf.Fg != "" {
		c, err := ansi.ParseColor(rf.Fg)
		if err != nil {
			return err
		}
		r.Fg = c
	}
	if rf.Bg != "" {
		c, err := ansi.ParseColor(rf.Bg)
		if err != nil {
			return err
		}
		r.Bg = c
	}
	if rf.Bold != nil {
		r.Bold = *rf.Bold
	}
	return nil
}
