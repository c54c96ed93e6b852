package candidate

import (
	"time"
)

// Raw is a candidate event exactly as a site adapter extracted it.
// StartTime carries the venue's local wall-clock instant; Normalize converts
// it to UTC. Empty strings mean "not on the page".
type Raw struct {
	Title       string
	Description string
	StartTime   time.Time
	Cost        *float64
	SourceURL   string
	Image       string
	Artist      string
}

// Candidate is a normalized Raw: whitespace collapsed, empty strings coerced
// to absent, artist defaulted, start time in UTC, and the dedup key computed.
type Candidate struct {
	Title       string
	Description *string
	StartTime   time.Time
	Cost        *float64
	SourceURL   *string
	Image       *string
	Artist      string
	Key         Key
}

// Key is the composite natural key a candidate is matched to a stored row
// on. Date is the calendar date of the start time in the venue's timezone,
// formatted as 2006-01-02. Title is the normalized title.
type Key struct {
	VenueID string
	Date    string
	Title   string
}

// KeyFor computes the dedup key for an instant and title. The instant is
// interpreted in loc before its calendar date is taken, so a stored UTC
// instant and a scraped local one land on the same date.
func KeyFor(venueID string, start time.Time, loc *time.Location, title string) Key {
	return Key{
		VenueID: venueID,
		Date:    start.In(loc).Format("2006-01-02"),
		Title:   NormalizeTitle(title),
	}
}

// Normalize canonicalizes a Raw candidate for the given venue.
func Normalize(venueID string, loc *time.Location, raw Raw) Candidate {
	title := CollapseSpace(raw.Title)
	artist := CollapseSpace(raw.Artist)
	if artist == "" {
		artist = title
	}

	return Candidate{
		Title:       title,
		Description: Optional(raw.Description),
		StartTime:   raw.StartTime.UTC(),
		Cost:        raw.Cost,
		SourceURL:   Optional(raw.SourceURL),
		Image:       Optional(raw.Image),
		Artist:      artist,
		Key:         KeyFor(venueID, raw.StartTime, loc, raw.Title),
	}
}

// Optional collapses whitespace and coerces the empty string to absent.
func Optional(s string) *string {
	s = CollapseSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// NumEqual reports whether two optional numbers are equal, treating two
// absent values as equal to each other. Used for cost change detection:
// absent means "price unknown" and zero means "confirmed free", so the two
// are never conflated.
func NumEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
