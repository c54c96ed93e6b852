package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/mbrevik/gigwire/internal/store"
	"github.com/mbrevik/gigwire/internal/venue"
)

func TestGenerateICS(t *testing.T) {
	v, err := venue.New("velvetroom", "The Velvet Room", "https://velvetroom.example", "America/New_York", "")
	if err != nil {
		t.Fatalf("building venue: %v", err)
	}
	venues := map[string]venue.Venue{v.ID: v}

	cost := 25.0
	url := "https://velvetroom.example/shows/midnights"
	events := []*store.EventRow{
		{
			ID:        "evt-1",
			VenueID:   "velvetroom",
			Title:     "The Midnights, Live",
			StartTime: time.Date(2026, 1, 25, 2, 0, 0, 0, time.UTC),
			Cost:      &cost,
			SourceURL: &url,
		},
		{
			ID:        "evt-2",
			VenueID:   "velvetroom",
			Title:     "Open Mic Night",
			StartTime: time.Date(2026, 2, 2, 1, 0, 0, 0, time.UTC),
		},
	}

	ics := GenerateICS(events, venues)

	if !strings.HasPrefix(ics, "BEGIN:VCALENDAR\r\n") || !strings.HasSuffix(ics, "END:VCALENDAR\r\n") {
		t.Error("missing calendar envelope")
	}
	if got := strings.Count(ics, "BEGIN:VEVENT"); got != 2 {
		t.Errorf("got %d VEVENT blocks, want 2", got)
	}
	for _, want := range []string{
		"UID:evt-1@gigwire",
		"DTSTART:20260125T020000Z",
		"DTEND:20260125T050000Z",
		"SUMMARY:The Midnights\\, Live",
		"LOCATION:The Velvet Room",
		"URL:" + url,
		"Tickets: $25.00",
	} {
		if !strings.Contains(ics, want) {
			t.Errorf("feed missing %q", want)
		}
	}
}

func TestGenerateICSEscapesSpecialCharacters(t *testing.T) {
	events := []*store.EventRow{{
		ID:        "evt-1",
		VenueID:   "unknown",
		Title:     "Punk; Noise, and\nMore",
		StartTime: time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC),
	}}

	ics := GenerateICS(events, nil)
	if !strings.Contains(ics, `SUMMARY:Punk\; Noise\, and\nMore`) {
		t.Errorf("special characters not escaped:\n%s", ics)
	}
}

func TestGenerateICSEmpty(t *testing.T) {
	ics := GenerateICS(nil, nil)
	if strings.Contains(ics, "VEVENT") {
		t.Error("empty feed should have no VEVENT blocks")
	}
	if !strings.Contains(ics, "BEGIN:VCALENDAR") {
		t.Error("empty feed should still be a valid calendar")
	}
}
