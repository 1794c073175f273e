// ABOUTME: Tests for environment variable expansion in config paths
// ABOUTME: Validates ${VAR} replacement for set, unset, and mixed patterns

package config

import (
	"testing"
)

func TestExpandEnv(t *testing.T) {
	t.Setenv("VTUI_TEST_HOME", "/home/u")

	tests := []struct {
		in, want string
	}{
		{"${VTUI_TEST_HOME}", "/home/u"},
		{"${DEFINITELY_NOT_SET_12345}", ""},
		{"${VTUI_TEST_HOME}/.vtui/trace.jsonl", "/home/u/.vtui/trace.jsonl"},
		{"plain string", "plain string"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := expandEnv(tt.in); got != tt.want {
			t.Errorf("expandEnv(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolveEnvVars(t *testing.T) {
	t.Setenv("VTUI_TEST_DIR", "/tmp/vtui")

	c := Default()
	c.ThemeFile = "${VTUI_TEST_DIR}/theme.yaml"
	c.Log.File = "${VTUI_TEST_DIR}/vtui.log"
	c.Trace.File = "${VTUI_TEST_DIR}/trace.jsonl"
	c.InterruptKey = "${VTUI_TEST_DIR}"

	ResolveEnvVars(c)

	if c.ThemeFile != "/tmp/vtui/theme.yaml" {
		t.Errorf("ThemeFile = %q", c.ThemeFile)
	}
	if c.Log.File != "/tmp/vtui/vtui.log" {
		t.Errorf("Log.File = %q", c.Log.File)
	}
	if c.Trace.File != "/tmp/vtui/trace.jsonl" {
		t.Errorf("Trace.File = %q", c.Trace.File)
	}
	if c.InterruptKey != "${VTUI_TEST_DIR}" {
		t.Errorf("InterruptKey expanded to %q; only paths expand", c.InterruptKey)
	}
}
