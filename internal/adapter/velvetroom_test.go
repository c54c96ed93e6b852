package adapter

import (
	"os"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mbrevik/gigwire/internal/venue"
)

func testVenue(t *testing.T, id string) venue.Venue {
	t.Helper()
	v, err := venue.New(id, "Test Venue", "https://venue.example", "America/Los_Angeles", "/img/default.jpg")
	if err != nil {
		t.Fatalf("building test venue: %v", err)
	}
	return v
}

func loadFixture(t *testing.T, name string) *goquery.Document {
	t.Helper()
	f, err := os.Open("testdata/" + name)
	if err != nil {
		t.Fatalf("loading fixture %s: %v", name, err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		t.Fatalf("parsing fixture %s: %v", name, err)
	}
	return doc
}

func TestVelvetRoomParseListing(t *testing.T) {
	a := NewVelvetRoom(testVenue(t, "velvet-room"))
	a.now = func() time.Time { return time.Date(2025, 11, 15, 12, 0, 0, 0, time.UTC) }

	raws := a.parseListing(loadFixture(t, "velvetroom.html"))

	// The TBA card and the card without a title must be dropped.
	if len(raws) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(raws))
	}

	first := raws[0]
	if first.Title != "The Midnights" {
		t.Errorf("title = %q, expected date prefix stripped", first.Title)
	}
	if first.Artist != "The Midnights with The Night Owls" {
		t.Errorf("artist = %q", first.Artist)
	}
	if first.Description != "An evening of dream pop." {
		t.Errorf("description = %q", first.Description)
	}

	// Show time (9PM) is authoritative over the 8PM door time.
	want := time.Date(2026, time.January, 24, 21, 0, 0, 0, a.venue.Location)
	if !first.StartTime.Equal(want) {
		t.Errorf("start = %v, want %v", first.StartTime, want)
	}

	if first.Cost == nil || *first.Cost != 20 {
		t.Errorf("cost = %v, want 20 with the fee line excluded", first.Cost)
	}
	if first.SourceURL != "https://venue.example/shows/the-midnights" {
		t.Errorf("source URL = %q", first.SourceURL)
	}
	if first.Image != "https://venue.example/img/midnights.jpg" {
		t.Errorf("image = %q", first.Image)
	}

	second := raws[1]
	if second.Title != "Cedar & Pine" {
		t.Errorf("second title = %q", second.Title)
	}
	if second.Artist != "" {
		t.Errorf("second artist should be empty without a support line, got %q", second.Artist)
	}
	if second.Cost == nil || *second.Cost != 15 {
		t.Errorf("second cost = %v, want minimum tier 15", second.Cost)
	}
	if second.StartTime.Hour() != 20 {
		t.Errorf("second start hour = %d, want 20 (show time)", second.StartTime.Hour())
	}
	if second.Image != "/img/default.jpg" {
		t.Errorf("second image = %q, want venue default", second.Image)
	}
}
