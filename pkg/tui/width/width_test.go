// ABOUTME: Tests for cell measurement, fitting, truncation, and wrapping of styled text

package width

import (
	"reflect"
	"testing"
)

func TestCells(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "empty", input: "", want: 0},
		{name: "ascii", input: "hello", want: 5},
		{name: "sgr", input: "\x1b[31mred\x1b[0m", want: 3},
		{name: "osc title", input: "\x1b]0;title\x07ok", want: 2},
		{name: "cjk", input: "你好", want: 4},
		{name: "emoji", input: "👋", want: 2},
		{name: "decomposed accent", input: "é", want: 1},
		{name: "only escapes", input: "\x1b[1m\x1b[0m", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Cells(tt.input); got != tt.want {
				t.Errorf("Cells(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	if got := Normalize("é"); got != "é" {
		t.Errorf("Normalize(decomposed) = %q, want %q", got, "é")
	}
	if got := Normalize("plain"); got != "plain" {
		t.Errorf("Normalize(plain) = %q", got)
	}
}

func TestStrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{"\x1b[1;31mbold\x1b[m", "bold"},
		{"a\x1b]8;;http://x\x1b\\link\x1b]8;;\x1b\\b", "alinkb"},
		{"\x1b(Bx", "x"},
		{"trailing\x1b[", "trailing"},
	}
	for _, tt := range tests {
		if got := Strip(tt.input); got != tt.want {
			t.Errorf("Strip(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		cols  int
		want  string
	}{
		{name: "pads", input: "ab", cols: 4, want: "ab  "},
		{name: "cuts", input: "abcdef", cols: 3, want: "abc"},
		{name: "exact", input: "abc", cols: 3, want: "abc"},
		{name: "wide at edge", input: "a你", cols: 2, want: "a "},
		{name: "keeps escapes", input: "\x1b[1mabc\x1b[0m", cols: 2, want: "\x1b[1mab"},
		{name: "zero", input: "abc", cols: 0, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Fit(tt.input, tt.cols); got != tt.want {
				t.Errorf("Fit(%q, %d) = %q, want %q", tt.input, tt.cols, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		cols  int
		want  string
	}{
		{"short", 10, "short"},
		{"hello world", 6, "hello…"},
		{"hello", 1, "…"},
		{"hello", 0, ""},
		{"\x1b[31mhello\x1b[0m", 3, "\x1b[31mhe\x1b[0m…"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.input, tt.cols); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.cols, got, tt.want)
		}
	}
	if got := Pad("ab", 4); got != "ab  " {
		t.Errorf("Pad = %q", got)
	}
}

func TestWrap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		cols  int
		want  []string
	}{
		{name: "empty", input: "", cols: 5, want: []string{""}},
		{name: "fits", input: "hello", cols: 10, want: []string{"hello"}},
		{name: "word break", input: "hello world", cols: 7, want: []string{"hello", "world"}},
		{name: "two per line", input: "a b c d", cols: 3, want: []string{"a b", "c d"}},
		{name: "long word", input: "abcdef", cols: 3, want: []string{"abc", "def"}},
		{name: "newlines", input: "ab\ncd", cols: 10, want: []string{"ab", "cd"}},
		{name: "carries color", input: "\x1b[31mab cd", cols: 2, want: []string{"\x1b[31mab", "\x1b[31mcd"}},
		{name: "reset stops carry", input: "\x1b[31ma\x1b[0m bc", cols: 2, want: []string{"\x1b[31ma\x1b[0m", "bc"}},
		{name: "zero width", input: "x", cols: 0, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Wrap(tt.input, tt.cols); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Wrap(%q, %d) = %q, want %q", tt.input, tt.cols, got, tt.want)
			}
		})
	}
}

func TestLRU_Eviction(t *testing.T) {
	t.Parallel()

	c := newLRU(2)
	c.put("a", 1)
	c.put("b", 2)
	c.get("a")
	c.put("c", 3)

	if _, ok := c.get("b"); ok {
		t.Error("least recently used entry should be evicted")
	}
	if w, ok := c.get("a"); !ok || w != 1 {
		t.Errorf("get(a) = %d, %v; want 1, true", w, ok)
	}
}

func BenchmarkCells_Styled(b *testing.B) {
	s := "\x1b[31;1mColored\x1b[0m and 你好 text"
	for b.Loop() {
		measure(s)
	}
}
