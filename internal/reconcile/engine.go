package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/mbrevik/gigwire/internal/artist"
	"github.com/mbrevik/gigwire/internal/candidate"
	"github.com/mbrevik/gigwire/internal/store"
	"github.com/mbrevik/gigwire/internal/venue"
)

// windowPad widens the stored-row query window on each side, tolerating
// small clock or timezone skew between scraped and stored times.
const windowPad = 48 * time.Hour

// Outcome is the terminal state of one candidate.
type Outcome string

const (
	SkippedPast Outcome = "skipped_past"
	Inserted    Outcome = "inserted"
	Updated     Outcome = "updated"
	NoOp        Outcome = "no_op"
	Failed      Outcome = "failed"
)

// Result records what happened to one candidate.
type Result struct {
	Candidate candidate.Candidate
	Outcome   Outcome
	Row       *store.EventRow
	Err       error
}

// Engine reconciles batches of candidates against the event store.
type Engine struct {
	events  store.EventStore
	artists *artist.Resolver
	now     func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the engine's notion of now. Tests use this; production
// code never should.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an Engine.
func New(events store.EventStore, artists *artist.Resolver, opts ...Option) *Engine {
	e := &Engine{
		events:  events,
		artists: artists,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Reconcile processes one venue's batch in input order. A failure on one
// candidate is recorded in its Result and does not stop the rest of the
// batch; the returned error covers only the up-front window query. No
// candidate causes more than one store write.
func (e *Engine) Reconcile(ctx context.Context, v venue.Venue, batch []candidate.Candidate) ([]Result, error) {
	if len(batch) == 0 {
		return nil, nil
	}

	index, err := e.loadIndex(ctx, v, batch)
	if err != nil {
		return nil, err
	}

	now := e.now()
	results := make([]Result, 0, len(batch))
	for _, c := range batch {
		results = append(results, e.reconcileOne(ctx, v, c, index, now))
	}
	return results, nil
}

// loadIndex fetches every stored row that could match the batch in a single
// range query and indexes it by dedup key.
func (e *Engine) loadIndex(ctx context.Context, v venue.Venue, batch []candidate.Candidate) (map[candidate.Key]*store.EventRow, error) {
	min, max := batch[0].StartTime, batch[0].StartTime
	for _, c := range batch[1:] {
		if c.StartTime.Before(min) {
			min = c.StartTime
		}
		if c.StartTime.After(max) {
			max = c.StartTime
		}
	}

	rows, err := e.events.EventsInRange(ctx, v.ID, min.Add(-windowPad), max.Add(windowPad))
	if err != nil {
		return nil, fmt.Errorf("loading stored events for %s: %w", v.ID, err)
	}

	index := make(map[candidate.Key]*store.EventRow, len(rows))
	for _, row := range rows {
		index[candidate.KeyFor(v.ID, row.StartTime, v.Location, row.Title)] = row
	}
	return index, nil
}

func (e *Engine) reconcileOne(ctx context.Context, v venue.Venue, c candidate.Candidate, index map[candidate.Key]*store.EventRow, now time.Time) Result {
	// Events that have already started are never created or touched.
	if !c.StartTime.After(now) {
		return Result{Candidate: c, Outcome: SkippedPast}
	}

	var artistID *string
	resolved, err := e.artists.Resolve(ctx, c.Artist)
	if err != nil {
		return Result{Candidate: c, Outcome: Failed, Err: err}
	}
	if resolved != nil {
		id := resolved.ID
		artistID = &id
	}

	patch := buildPatch(v.ID, c, artistID)

	existing, found := index[c.Key]
	if !found {
		row, err := e.events.CreateEvent(ctx, patch)
		if err != nil {
			return Result{Candidate: c, Outcome: Failed, Err: fmt.Errorf("creating event %q: %w", c.Title, err)}
		}
		index[c.Key] = row
		return Result{Candidate: c, Outcome: Inserted, Row: row}
	}

	if patchMatches(existing, patch) {
		return Result{Candidate: c, Outcome: NoOp, Row: existing}
	}

	row, err := e.events.UpdateEvent(ctx, existing.ID, patch)
	if err != nil {
		return Result{Candidate: c, Outcome: Failed, Err: fmt.Errorf("updating event %s: %w", existing.ID, err)}
	}
	index[c.Key] = row
	return Result{Candidate: c, Outcome: Updated, Row: row}
}

// buildPatch assembles the full field set the pipeline writes for a
// candidate, for creates and updates alike.
func buildPatch(venueID string, c candidate.Candidate, artistID *string) store.EventPatch {
	return store.EventPatch{
		Title:           c.Title,
		VenueID:         venueID,
		StartTime:       c.StartTime,
		Description:     c.Description,
		Cost:            c.Cost,
		Status:          store.StatusPublished,
		SourceType:      store.SourceScraping,
		SourceURL:       c.SourceURL,
		IngestionStatus: store.IngestionSuccess,
		ArtistID:        artistID,
		Image:           c.Image,
	}
}

// patchMatches reports whether applying the patch would change nothing:
// exact equality for strings and enums, instant equality for start times,
// and the nullable-number rule for cost.
func patchMatches(row *store.EventRow, patch store.EventPatch) bool {
	return row.Title == patch.Title &&
		row.VenueID == patch.VenueID &&
		row.StartTime.Equal(patch.StartTime) &&
		strEqual(row.Description, patch.Description) &&
		candidate.NumEqual(row.Cost, patch.Cost) &&
		row.Status == patch.Status &&
		row.SourceType == patch.SourceType &&
		strEqual(row.SourceURL, patch.SourceURL) &&
		row.IngestionStatus == patch.IngestionStatus &&
		strEqual(row.ArtistID, patch.ArtistID) &&
		strEqual(row.Image, patch.Image)
}

func strEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
