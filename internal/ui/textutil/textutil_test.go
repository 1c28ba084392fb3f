package textutil

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"Intro", 10, "Intro"},
		{"Intro", 5, "Intro"},
		{"Intro Loop", 6, "Intro…"},
		{"Intro", 0, ""},
		{"日本語テキスト", 5, "日本…"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
		if w := VisualWidth(Truncate(tt.in, tt.width)); w > tt.width {
			t.Errorf("Truncate(%q, %d) is %d columns wide", tt.in, tt.width, w)
		}
	}
}

func TestCenter(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"ab", 6, "  ab  "},
		{"abc", 6, " abc  "},
		{"abcdef", 6, "abcdef"},
		{"abcdefgh", 6, "abcde…"},
	}
	for _, tt := range tests {
		if got := Center(tt.in, tt.width); got != tt.want {
			t.Errorf("Center(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
