package adapter

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
)

func TestGrandAnnexParseCalendar(t *testing.T) {
	a := NewGrandAnnex(testVenue(t, "grand-annex"))

	raws := a.parseCalendar(loadFixture(t, "grandannex.html"))

	// Header row and the TBD row must be dropped.
	if len(raws) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(raws))
	}

	first := raws[0]
	if first.Title != "Winter Jazz Revue" {
		t.Errorf("title = %q", first.Title)
	}
	if first.Artist != "Lena Okafor Trio" {
		t.Errorf("artist = %q", first.Artist)
	}
	want := time.Date(2026, time.February, 15, 20, 0, 0, 0, a.venue.Location)
	if !first.StartTime.Equal(want) {
		t.Errorf("start = %v, want %v", first.StartTime, want)
	}
	if first.Cost == nil || *first.Cost != 25.50 {
		t.Errorf("cost = %v, want 25.50", first.Cost)
	}
	if first.SourceURL != "https://venue.example/events/winter-jazz" {
		t.Errorf("source URL = %q", first.SourceURL)
	}
	if first.Image != "/img/default.jpg" {
		t.Errorf("image = %q, want venue default", first.Image)
	}

	second := raws[1]
	if second.Title != "Open Stage" {
		t.Errorf("second title = %q", second.Title)
	}
	if second.Cost == nil || *second.Cost != 0 {
		t.Errorf("free show cost = %v, want confirmed 0", second.Cost)
	}
	if second.StartTime.Hour() != 19 || second.StartTime.Minute() != 30 {
		t.Errorf("second start = %v, want 19:30", second.StartTime)
	}
	if second.Artist != "" {
		t.Errorf("second artist = %q, expected empty", second.Artist)
	}
}

func TestGrandAnnexImageOnlyLinkKeepsTitle(t *testing.T) {
	a := NewGrandAnnex(testVenue(t, "grand-annex"))

	html := `<table class="calendar">
		<tr>
			<td class="date">03/07/2026 8:00 PM</td>
			<td class="title">Soul Night <a href="/events/soul-night"><img src="/img/soul.jpg"></a></td>
			<td class="artist">The Night Owls</td>
			<td class="price">$15</td>
		</tr>
	</table>`
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parsing document: %v", err)
	}

	raws := a.parseCalendar(doc)
	if len(raws) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(raws))
	}
	if raws[0].Title != "Soul Night" {
		t.Errorf("title = %q, the cell text must survive an image-only link", raws[0].Title)
	}
	if raws[0].SourceURL != "https://venue.example/events/soul-night" {
		t.Errorf("source URL = %q", raws[0].SourceURL)
	}
}
