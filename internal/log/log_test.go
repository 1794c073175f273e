// ABOUTME: Tests for the logging package
// ABOUTME: Validates level filtering, level parsing, and output redirection

package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// These tests mutate package globals, so none of them run in parallel.

func TestSetLevel(t *testing.T) {
	savedLevel := GetLevel()
	defer SetLevel(savedLevel)

	SetLevel(LevelDebug)
	if GetLevel() != LevelDebug {
		t.Errorf("expected LevelDebug, got %v", GetLevel())
	}

	SetLevel(LevelError)
	if GetLevel() != LevelError {
		t.Errorf("expected LevelError, got %v", GetLevel())
	}
}

func TestLevelFiltering(t *testing.T) {
	savedLevel := GetLevel()
	defer SetLevel(savedLevel)

	var buf bytes.Buffer
	prev := SetOutput(&buf)
	defer SetOutput(prev)

	SetLevel(LevelWarn)
	Debug("debug: %d", 1)
	Info("info: %d", 2)
	Warn("warn: %d", 3)
	Error("error: %d", 4)

	got := buf.String()
	if strings.Contains(got, "debug: 1") || strings.Contains(got, "info: 2") {
		t.Errorf("suppressed levels leaked: %q", got)
	}
	if !strings.Contains(got, "[WARN] warn: 3\n") {
		t.Errorf("missing warn line: %q", got)
	}
	if !strings.Contains(got, "[ERROR] error: 4\n") {
		t.Errorf("missing error line: %q", got)
	}
}

func TestDebugEmittedAtDebugLevel(t *testing.T) {
	savedLevel := GetLevel()
	defer SetLevel(savedLevel)

	var buf bytes.Buffer
	prev := SetOutput(&buf)
	defer SetOutput(prev)

	SetLevel(LevelDebug)
	Debug("this should emit: %s", "test")

	if got := buf.String(); got != "[DEBUG] this should emit: test\n" {
		t.Errorf("Debug output = %q", got)
	}
}

func TestSetOutputNilDiscards(t *testing.T) {
	prev := SetOutput(nil)
	defer SetOutput(prev)

	// Must not panic on a nil writer.
	Error("dropped")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: LevelDebug},
		{in: "INFO", want: LevelInfo},
		{in: "", want: LevelInfo},
		{in: "warning", want: LevelWarn},
		{in: "error", want: LevelError},
		{in: "loud", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
