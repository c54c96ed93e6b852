package candidate

import (
	"testing"
	"time"
)

func TestCollapseSpace(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"already clean", "Jazz Night", "Jazz Night"},
		{"leading and trailing", "  Jazz Night  ", "Jazz Night"},
		{"internal runs", "Jazz   \t Night", "Jazz Night"},
		{"newlines", "Jazz\nNight", "Jazz Night"},
		{"empty", "", ""},
		{"only whitespace", "  \t\n ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CollapseSpace(tt.in); got != tt.expected {
				t.Errorf("CollapseSpace(%q) = %q, expected %q", tt.in, got, tt.expected)
			}
		})
	}
}

func TestNormalizeTitle(t *testing.T) {
	a := NormalizeTitle("The Midnights")
	b := NormalizeTitle(" the   MIDNIGHTS ")
	if a != b {
		t.Errorf("expected %q and %q to normalize identically, got %q and %q",
			"The Midnights", " the   MIDNIGHTS ", a, b)
	}
	if a != "the midnights" {
		t.Errorf("NormalizeTitle = %q, expected %q", a, "the midnights")
	}
}

func TestOptional(t *testing.T) {
	if got := Optional(""); got != nil {
		t.Errorf("Optional(\"\") = %v, expected nil", *got)
	}
	if got := Optional("   "); got != nil {
		t.Errorf("Optional(whitespace) = %v, expected nil", *got)
	}
	if got := Optional(" hello  world "); got == nil || *got != "hello world" {
		t.Errorf("Optional(' hello  world ') = %v, expected 'hello world'", got)
	}
}

func TestNumEqual(t *testing.T) {
	ten := 10.0
	tenAgain := 10.0
	fifteen := 15.0
	zero := 0.0

	tests := []struct {
		name string
		a, b *float64
		want bool
	}{
		{"both absent", nil, nil, true},
		{"absent vs present", nil, &ten, false},
		{"present vs absent", &ten, nil, false},
		{"equal values", &ten, &tenAgain, true},
		{"different values", &ten, &fifteen, false},
		{"zero is not absent", &zero, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NumEqual(tt.a, tt.b); got != tt.want {
				t.Errorf("NumEqual = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeyFor(t *testing.T) {
	la, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Fatalf("loading location: %v", err)
	}

	// 2026-02-01 21:00 local is 2026-02-02 05:00 UTC; the key must carry the
	// venue-local date either way.
	local := time.Date(2026, 2, 1, 21, 0, 0, 0, la)
	utc := local.UTC()

	k1 := KeyFor("v1", local, la, "Jazz Night")
	k2 := KeyFor("v1", utc, la, " JAZZ  night ")

	if k1 != k2 {
		t.Errorf("keys differ: %+v vs %+v", k1, k2)
	}
	if k1.Date != "2026-02-01" {
		t.Errorf("key date = %s, expected 2026-02-01", k1.Date)
	}
}

func TestNormalize(t *testing.T) {
	la, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Fatalf("loading location: %v", err)
	}

	cost := 20.0
	raw := Raw{
		Title:       "  The  Midnights ",
		Description: "",
		StartTime:   time.Date(2026, 1, 24, 21, 0, 0, 0, la),
		Cost:        &cost,
		SourceURL:   "https://venue.example/shows/midnights",
		Image:       "",
	}

	c := Normalize("v1", la, raw)

	if c.Title != "The Midnights" {
		t.Errorf("title = %q", c.Title)
	}
	if c.Description != nil {
		t.Error("empty description should be absent")
	}
	if c.Image != nil {
		t.Error("empty image should be absent")
	}
	if c.Artist != "The Midnights" {
		t.Errorf("artist should default to title, got %q", c.Artist)
	}
	if c.StartTime.Location() != time.UTC {
		t.Error("start time should be converted to UTC")
	}
	if !c.StartTime.Equal(raw.StartTime) {
		t.Error("UTC conversion must not change the instant")
	}
	if c.Key.Date != "2026-01-24" {
		t.Errorf("key date = %s", c.Key.Date)
	}

	raw.Artist = "The Midnights with The Night Owls"
	c = Normalize("v1", la, raw)
	if c.Artist != "The Midnights with The Night Owls" {
		t.Errorf("explicit artist should survive, got %q", c.Artist)
	}
}
