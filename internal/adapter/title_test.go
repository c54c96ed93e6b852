package adapter

import "testing"

func TestStripHeadingPrefix(t *testing.T) {
	tests := []struct {
		name     string
		heading  string
		expected string
	}{
		{"bullet separator", "SAT JAN 24 • The Midnights", "The Midnights"},
		{"dash separator with year", "Sat Jan 24, 2026 - The Midnights", "The Midnights"},
		{"no prefix", "The Midnights", "The Midnights"},
		{"full day and month names", "Saturday January 24: Cedar & Pine", "Cedar & Pine"},
		{"date-like band name untouched", "May Days", "May Days"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripHeadingPrefix(tt.heading); got != tt.expected {
				t.Errorf("stripHeadingPrefix(%q) = %q, expected %q", tt.heading, got, tt.expected)
			}
		})
	}
}

func TestArtistLine(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		support  string
		expected string
	}{
		{"support line present", "The Midnights", "with The Night Owls", "The Midnights with The Night Owls"},
		{"case insensitive", "The Midnights", "With Cedar & Pine", "The Midnights with Cedar & Pine"},
		{"no support line", "The Midnights", "", ""},
		{"unrelated line ignored", "The Midnights", "All ages welcome", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := artistLine(tt.title, tt.support); got != tt.expected {
				t.Errorf("artistLine(%q, %q) = %q, expected %q", tt.title, tt.support, got, tt.expected)
			}
		})
	}
}
