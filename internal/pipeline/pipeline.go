package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mbrevik/gigwire/internal/adapter"
	"github.com/mbrevik/gigwire/internal/artist"
	"github.com/mbrevik/gigwire/internal/candidate"
	"github.com/mbrevik/gigwire/internal/logger"
	"github.com/mbrevik/gigwire/internal/reconcile"
	"github.com/mbrevik/gigwire/internal/store"
)

// Entry pairs a venue with its adapter. The registry is ordered: venues are
// scraped in the order they were configured.
type Entry struct {
	Adapter adapter.Adapter
}

// Summary aggregates one run's outcomes.
type Summary struct {
	Venues      int               `json:"venues"`
	VenueErrors int               `json:"venue_errors"`
	Candidates  int               `json:"candidates"`
	Inserted    int               `json:"inserted"`
	Updated     int               `json:"updated"`
	NoOps       int               `json:"no_ops"`
	SkippedPast int               `json:"skipped_past"`
	Failed      int               `json:"failed"`
	Duration    time.Duration     `json:"duration_ns"`
	NewEvents   []*store.EventRow `json:"-"`
}

// Pipeline runs the scrape-normalize-reconcile loop for every registered
// venue.
type Pipeline struct {
	registry []Entry
	events   store.EventStore
	artists  store.ArtistStore
	out      io.Writer
	clock    func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithOutput redirects per-candidate progress lines, which default to
// stdout.
func WithOutput(w io.Writer) Option {
	return func(p *Pipeline) { p.out = w }
}

// WithClock overrides the pipeline's notion of now, for tests.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.clock = now }
}

// New creates a Pipeline over an ordered venue registry.
func New(registry []Entry, events store.EventStore, artists store.ArtistStore, opts ...Option) *Pipeline {
	p := &Pipeline{
		registry: registry,
		events:   events,
		artists:  artists,
		out:      os.Stdout,
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run processes every venue to completion and returns the run summary. A
// venue-level failure is logged and counted; the run always continues with
// the next venue.
func (p *Pipeline) Run(ctx context.Context) *Summary {
	start := p.clock()
	summary := &Summary{Venues: len(p.registry)}

	// One resolver per run: the artist cache stays coherent across venues
	// because nothing else writes concurrently.
	engine := reconcile.New(p.events, artist.New(p.artists), reconcile.WithClock(p.clock))

	for _, entry := range p.registry {
		v := entry.Adapter.Venue()
		if err := p.runVenue(ctx, engine, entry, summary); err != nil {
			summary.VenueErrors++
			fmt.Fprintf(p.out, "Scraping failed: %s: %v\n", v.Name, err)
			logger.Error("venue scrape failed", logger.Fields{"venue": v.ID}, err)
		}
	}

	summary.Duration = p.clock().Sub(start)
	logger.Info("run complete", logger.Fields{
		"venues":       summary.Venues,
		"venue_errors": summary.VenueErrors,
		"candidates":   summary.Candidates,
		"inserted":     summary.Inserted,
		"updated":      summary.Updated,
		"no_ops":       summary.NoOps,
		"skipped_past": summary.SkippedPast,
		"failed":       summary.Failed,
		"duration":     summary.Duration.String(),
	})
	return summary
}

func (p *Pipeline) runVenue(ctx context.Context, engine *reconcile.Engine, entry Entry, summary *Summary) error {
	v := entry.Adapter.Venue()

	scrapeStart := time.Now()
	raws, err := entry.Adapter.Scrape(ctx)
	logger.RecordTiming("scrape."+v.ID, time.Since(scrapeStart))
	if err != nil {
		return err
	}

	logger.Info("scraped venue", logger.Fields{"venue": v.ID, "candidates": len(raws)})
	logger.AddCounter("pipeline.candidates", int64(len(raws)))

	batch := make([]candidate.Candidate, 0, len(raws))
	for _, raw := range raws {
		batch = append(batch, candidate.Normalize(v.ID, v.Location, raw))
	}

	results, err := engine.Reconcile(ctx, v, batch)
	if err != nil {
		return err
	}

	for _, r := range results {
		summary.Candidates++
		logger.Debug("reconciled candidate", logger.Fields{
			"venue":   v.ID,
			"title":   r.Candidate.Title,
			"date":    r.Candidate.Key.Date,
			"outcome": string(r.Outcome),
		})
		switch r.Outcome {
		case reconcile.Inserted:
			summary.Inserted++
			summary.NewEvents = append(summary.NewEvents, r.Row)
			logger.IncrCounter("pipeline.inserted")
			fmt.Fprintf(p.out, "Inserted: %s (%s)\n", r.Candidate.Title, r.Candidate.Key.Date)
		case reconcile.Updated:
			summary.Updated++
			logger.IncrCounter("pipeline.updated")
			fmt.Fprintf(p.out, "Updated: %s (%s)\n", r.Candidate.Title, r.Candidate.Key.Date)
		case reconcile.NoOp:
			summary.NoOps++
			logger.IncrCounter("pipeline.no_op")
			fmt.Fprintf(p.out, "No changes: %s (%s)\n", r.Candidate.Title, r.Candidate.Key.Date)
		case reconcile.SkippedPast:
			summary.SkippedPast++
			logger.IncrCounter("pipeline.skipped_past")
			fmt.Fprintf(p.out, "Skipping past event: %s (%s)\n", r.Candidate.Title, r.Candidate.Key.Date)
		case reconcile.Failed:
			summary.Failed++
			logger.IncrCounter("pipeline.failed")
			fmt.Fprintf(p.out, "Failed: %s (%s)\n", r.Candidate.Title, r.Candidate.Key.Date)
			logger.Error("candidate failed", logger.Fields{
				"venue": v.ID,
				"title": r.Candidate.Title,
				"date":  r.Candidate.Key.Date,
			}, r.Err)
		}
	}

	return nil
}
