// ABOUTME: Tests for built-in lookup, YAML theme parsing, and the active theme pointer

package theme

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/mauromedda/vtui/pkg/tui/ansi"
)

func TestBuiltin(t *testing.T) {
	t.Parallel()

	for _, name := range BuiltinNames() {
		th, err := Builtin(name)
		if err != nil || th.Name != name {
			t.Errorf("Builtin(%q) = %v, %v", name, th, err)
		}
	}
	if _, err := Builtin("neon"); err == nil {
		t.Error("Builtin(neon) should fail")
	}
	if got := strings.Join(BuiltinNames(), ","); got != "dark,default,light,mono" {
		t.Errorf("BuiltinNames() = %s", got)
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		doc     string
		check   func(t *testing.T, th *Theme)
		wantErr string
	}{
		{
			name: "overrides on base",
			doc:  "name: ocean\nbase: dark\npalette:\n  accent: {fg: cyan, bold: true}\n",
			check: func(t *testing.T, th *Theme) {
				if th.Name != "ocean" {
					t.Errorf("Name = %q", th.Name)
				}
				want := Role{Fg: ansi.Cyan, Bg: ansi.ColorDefault, Bold: true}
				if th.Palette.Accent != want {
					t.Errorf("Accent = %+v, want %+v", th.Palette.Accent, want)
				}
				if th.Palette.Text != builtins["dark"].Palette.Text {
					t.Error("unset roles should come from the base")
				}
			},
		},
		{
			name: "default base and name",
			doc:  "palette:\n  text: {bg: \"17\"}\n",
			check: func(t *testing.T, th *Theme) {
				if th.Name != "default" || th.Palette.Text.Bg != 17 {
					t.Errorf("got %+v", th)
				}
			},
		},
		{
			name: "dark follows base unless set",
			doc:  "base: light\n",
			check: func(t *testing.T, th *Theme) {
				if th.Dark {
					t.Error("light base should not be dark")
				}
			},
		},
		{
			name: "explicit dark",
			doc:  "base: light\ndark: true\n",
			check: func(t *testing.T, th *Theme) {
				if !th.Dark {
					t.Error("dark: true ignored")
				}
			},
		},
		{name: "unknown role", doc: "palette:\n  sparkle: {fg: red}\n", wantErr: "unknown role"},
		{name: "bad color", doc: "palette:\n  text: {fg: mauve}\n", wantErr: "unknown color"},
		{name: "unknown base", doc: "base: neon\n", wantErr: "unknown theme"},
		{name: "malformed", doc: "palette: [", wantErr: "yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			th, err := Parse([]byte(tt.doc))
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Parse() error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			tt.check(t, th)
		})
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "theme.yaml")
	if err := os.WriteFile(path, []byte("base: mono\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	th, err := LoadFile(path)
	if err != nil || th.Name != "mono" {
		t.Fatalf("LoadFile() = %v, %v", th, err)
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadFile on a missing file should fail")
	}
}

func TestRole(t *testing.T) {
	t.Parallel()

	if !Plain.IsPlain() || DefaultPalette().Error.IsPlain() {
		t.Error("IsPlain mismatch")
	}
	if got := Plain.Style().Render("x"); got != "x" {
		t.Errorf("plain style rendered %q", got)
	}
}

func TestCurrentAndSet(t *testing.T) {
	if Current() == nil {
		t.Fatal("Current() is nil")
	}
	dark, _ := Builtin("dark")
	Set(dark)
	if Current() != dark {
		t.Error("Set did not take effect")
	}
	light, _ := Builtin("light")
	Set(light)
	if lipgloss.HasDarkBackground() {
		t.Error("light theme left lipgloss assuming a dark background")
	}
	Set(nil)
	if Current().Name != "default" {
		t.Errorf("Set(nil) left %q active", Current().Name)
	}
	if !lipgloss.HasDarkBackground() {
		t.Error("default theme should set a dark background")
	}
}
