package adapter

import (
	"testing"
	"time"
)

func TestPickShowTime(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantHour   int
		wantMinute int
		wantOK     bool
	}{
		{"show beats door, labels after", "SAT JAN 24, 2026 • 8PM DOOR, 9PM SHOW", 21, 0, true},
		{"show beats door, labels before", "Doors 7:30pm / Show 8:30pm", 20, 30, true},
		{"show label reversed order", "Show 9pm, doors 8pm", 21, 0, true},
		{"single unlabeled time", "8:00 PM", 20, 0, true},
		{"single door-only time", "Doors 8pm", 20, 0, true},
		{"noon boundary", "12PM SHOW", 12, 0, true},
		{"midnight boundary", "12AM SHOW", 0, 0, true},
		{"no time at all", "SAT JAN 24", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hour, minute, ok := pickShowTime(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("pickShowTime(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if hour != tt.wantHour || minute != tt.wantMinute {
				t.Errorf("pickShowTime(%q) = %d:%02d, want %d:%02d",
					tt.text, hour, minute, tt.wantHour, tt.wantMinute)
			}
		})
	}
}

func TestInferYear(t *testing.T) {
	tests := []struct {
		name  string
		month time.Month
		now   time.Time
		want  int
	}{
		{"january seen in november rolls over", time.January, time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC), 2026},
		{"january seen in march stays", time.January, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), 2026},
		{"same month stays", time.June, time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC), 2026},
		{"month ahead stays", time.December, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), 2026},
		{"just inside the window stays", time.March, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), 2026},
		{"just past the window rolls over", time.February, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), 2027},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inferYear(tt.month, tt.now); got != tt.want {
				t.Errorf("inferYear(%v, %v) = %d, want %d", tt.month, tt.now, got, tt.want)
			}
		})
	}
}

func TestParseClocksSkipsInvalid(t *testing.T) {
	clocks := parseClocks("13PM and 8:75pm and 9pm")
	if len(clocks) != 1 {
		t.Fatalf("expected 1 valid clock, got %d", len(clocks))
	}
	if clocks[0].hour != 21 {
		t.Errorf("hour = %d, want 21", clocks[0].hour)
	}
}
