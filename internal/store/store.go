package store

import (
	"context"
	"time"
)

// Status is the publication state of an event row.
type Status string

const (
	StatusPublished Status = "published"
	StatusDraft     Status = "draft"
	StatusHidden    Status = "hidden"
)

// SourceType records where an event row came from.
type SourceType string

const (
	SourceManual   SourceType = "manual"
	SourceScraping SourceType = "scraping"
)

// IngestionStatus is the pipeline-assigned outcome tag, distinct from the
// publication Status.
type IngestionStatus string

const (
	IngestionSuccess IngestionStatus = "success"
	IngestionFailed  IngestionStatus = "failed"
	IngestionPending IngestionStatus = "pending"
)

// EventRow is a persisted event. StartTime is always stored in UTC.
type EventRow struct {
	ID              string          `json:"id"`
	VenueID         string          `json:"venue_id"`
	StartTime       time.Time       `json:"start_time"`
	Title           string          `json:"title"`
	Description     *string         `json:"description,omitempty"`
	Cost            *float64        `json:"cost,omitempty"`
	SourceURL       *string         `json:"source_url,omitempty"`
	ArtistID        *string         `json:"artist_id,omitempty"`
	Image           *string         `json:"image,omitempty"`
	Status          Status          `json:"status"`
	SourceType      SourceType      `json:"source_type"`
	IngestionStatus IngestionStatus `json:"ingestion_status"`
}

// EventPatch is the full set of fields the pipeline writes for an event,
// used both for creates and for updates in place.
type EventPatch struct {
	Title           string
	VenueID         string
	StartTime       time.Time
	Description     *string
	Cost            *float64
	Status          Status
	SourceType      SourceType
	SourceURL       *string
	IngestionStatus IngestionStatus
	ArtistID        *string
	Image           *string
}

// Artist is a stable performer identity, created lazily by the resolver.
type Artist struct {
	ID        string
	Name      string
	Bio       *string
	Image     *string
	CreatedAt time.Time
}

// EventStore is the event side of the persistence gateway.
type EventStore interface {
	// EventsInRange returns all rows for a venue with a start time inside
	// [min, max], inclusive.
	EventsInRange(ctx context.Context, venueID string, min, max time.Time) ([]*EventRow, error)

	// CreateEvent persists a new row from the patch and returns it.
	CreateEvent(ctx context.Context, patch EventPatch) (*EventRow, error)

	// UpdateEvent overwrites the row with the given id and returns the
	// updated row.
	UpdateEvent(ctx context.Context, id string, patch EventPatch) (*EventRow, error)
}

// ArtistStore is the artist side of the persistence gateway.
type ArtistStore interface {
	// ArtistByName looks up an artist by name. The match is exact up to
	// case: names are unique under case folding, so "The Midnights" finds a
	// row stored as "the midnights". A missing artist is (nil, nil), not an
	// error.
	ArtistByName(ctx context.Context, name string) (*Artist, error)

	// CreateArtist creates an artist with the given name. Backends that can
	// should make this insert-if-absent: creating a name that already exists
	// under case folding returns the existing artist.
	CreateArtist(ctx context.Context, name string) (*Artist, error)
}
