package textinfo

import "testing"

func TestCountWords(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"   \n\t", 0},
		{"hello world", 2},
		{"# Title\n\nsome **bold** text", 4},
		{"## ", 0},
		{"[link](url) here", 2},
		{"مرحبا بالعالم", 2},
		{"a  b\n\nc", 3},
	}

	for _, tt := range tests {
		if got := CountWords(tt.text); got != tt.want {
			t.Errorf("CountWords(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestCountChars(t *testing.T) {
	if got := CountChars("héllo"); got != 5 {
		t.Errorf("CountChars() = %d, want 5", got)
	}
	if got := CountChars(""); got != 0 {
		t.Errorf("CountChars(\"\") = %d, want 0", got)
	}
}

func TestContainsArabic(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"plain ascii", false},
		{"héllo wörld", false},
		{"mixed مرحبا text", true},
		{"ﻼ", true},
		{"ݐ", true},
		{"שלום", false},
	}

	for _, tt := range tests {
		if got := ContainsArabic(tt.text); got != tt.want {
			t.Errorf("ContainsArabic(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestPlural(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 words"},
		{1, "1 word"},
		{12, "12 words"},
	}
	for _, tt := range tests {
		if got := Plural(tt.n, "word"); got != tt.want {
			t.Errorf("Plural(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
