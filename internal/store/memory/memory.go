// Package memory provides a map-backed implementation of the persistence
// gateway, used by tests and by dry runs that must not touch a real store.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mbrevik/gigwire/internal/store"
)

// Store holds events and artists in memory. Safe for concurrent use, though
// the pipeline itself is strictly sequential.
type Store struct {
	mu      sync.Mutex
	events  map[string]*store.EventRow
	artists map[string]*store.Artist
	nextID  int

	// Counters for tests and dry-run summaries.
	creates int
	updates int
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		events:  make(map[string]*store.EventRow),
		artists: make(map[string]*store.Artist),
	}
}

// EventsInRange returns rows for a venue with a start time in [min, max].
func (s *Store) EventsInRange(ctx context.Context, venueID string, min, max time.Time) ([]*store.EventRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*store.EventRow
	for _, row := range s.events {
		if row.VenueID != venueID {
			continue
		}
		if row.StartTime.Before(min) || row.StartTime.After(max) {
			continue
		}
		cp := *row
		out = append(out, &cp)
	}
	return out, nil
}

// CreateEvent persists a new row from the patch.
func (s *Store) CreateEvent(ctx context.Context, patch store.EventPatch) (*store.EventRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	s.creates++
	row := rowFromPatch(fmt.Sprintf("evt-%d", s.nextID), patch)
	s.events[row.ID] = row
	cp := *row
	return &cp, nil
}

// UpdateEvent overwrites the row with the given id.
func (s *Store) UpdateEvent(ctx context.Context, id string, patch store.EventPatch) (*store.EventRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[id]; !ok {
		return nil, fmt.Errorf("event not found: %s", id)
	}
	s.updates++
	row := rowFromPatch(id, patch)
	s.events[id] = row
	cp := *row
	return &cp, nil
}

// ArtistByName looks an artist up, matching case-insensitively.
func (s *Store) ArtistByName(ctx context.Context, name string) (*store.Artist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a, ok := s.artists[strings.ToLower(name)]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

// CreateArtist creates an artist, returning the existing one if the name is
// already taken under case folding. The store is single-writer in practice,
// so check-then-create here is race-free enough; the postgres backend does
// this atomically.
func (s *Store) CreateArtist(ctx context.Context, name string) (*store.Artist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(name)
	if a, ok := s.artists[key]; ok {
		cp := *a
		return &cp, nil
	}

	s.nextID++
	a := &store.Artist{
		ID:        fmt.Sprintf("artist-%d", s.nextID),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	s.artists[key] = a
	cp := *a
	return &cp, nil
}

// EventCount returns the number of stored rows.
func (s *Store) EventCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

// Writes returns the number of create and update calls seen so far.
func (s *Store) Writes() (creates, updates int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creates, s.updates
}

func rowFromPatch(id string, patch store.EventPatch) *store.EventRow {
	return &store.EventRow{
		ID:              id,
		VenueID:         patch.VenueID,
		StartTime:       patch.StartTime.UTC(),
		Title:           patch.Title,
		Description:     patch.Description,
		Cost:            patch.Cost,
		SourceURL:       patch.SourceURL,
		ArtistID:        patch.ArtistID,
		Image:           patch.Image,
		Status:          patch.Status,
		SourceType:      patch.SourceType,
		IngestionStatus: patch.IngestionStatus,
	}
}
