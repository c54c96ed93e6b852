package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/mbrevik/gigwire/internal/logger"
	"github.com/mbrevik/gigwire/internal/pipeline"
	"github.com/mbrevik/gigwire/internal/store"
	"github.com/mbrevik/gigwire/internal/venue"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult contains data to be output
type OutputResult struct {
	CheckedAt time.Time         `json:"checked_at"`
	Summary   *pipeline.Summary `json:"summary"`
	NewEvents []*store.EventRow `json:"new_events"`

	// Venues resolves venue IDs to names and timezones for display. It is
	// not part of the JSON output.
	Venues map[string]venue.Venue `json:"-"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	s := result.Summary

	fmt.Fprintf(w, "\nScraped %d venues in %s", s.Venues, s.Duration.Round(time.Millisecond))
	if s.VenueErrors > 0 {
		fmt.Fprintf(w, " (%d failed)", s.VenueErrors)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Candidates: %d  inserted: %d  updated: %d  unchanged: %d  past: %d  failed: %d\n",
		s.Candidates, s.Inserted, s.Updated, s.NoOps, s.SkippedPast, s.Failed)

	if len(result.NewEvents) == 0 {
		fmt.Fprintln(w, "No new events.")
		return nil
	}

	// Group new events by venue for display.
	byVenue := make(map[string][]*store.EventRow)
	for _, row := range result.NewEvents {
		byVenue[row.VenueID] = append(byVenue[row.VenueID], row)
	}
	ids := make([]string, 0, len(byVenue))
	for id := range byVenue {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		rows := byVenue[id]
		name := id
		loc := time.UTC
		if v, ok := result.Venues[id]; ok {
			name = v.Name
			loc = v.Location
		}

		fmt.Fprintf(w, "\n%s (%d new):\n", name, len(rows))
		for _, row := range rows {
			fmt.Fprintf(w, "  NEW: %s on %s\n", row.Title, row.StartTime.In(loc).Format("Mon, Jan 2 at 3:04 PM"))
			if verbose {
				fmt.Fprintf(w, "       ID: %s\n", row.ID)
				if row.Cost != nil {
					fmt.Fprintf(w, "       Cost: $%.2f\n", *row.Cost)
				}
				if row.SourceURL != nil {
					fmt.Fprintf(w, "       URL: %s\n", *row.SourceURL)
				}
			}
		}
	}
	fmt.Fprintf(w, "\nTotal: %d new events across %d venues\n", len(result.NewEvents), len(byVenue))

	return nil
}

// writeMetrics dumps the run's counters and scrape timings, for --verbose.
func writeMetrics(w io.Writer) {
	counters, timings := logger.MetricsSnapshot()
	if len(counters) == 0 && len(timings) == 0 {
		return
	}

	fmt.Fprintln(w, "\nMetrics:")

	names := make([]string, 0, len(counters))
	for name := range counters {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s: %d\n", name, counters[name])
	}

	names = names[:0]
	for name := range timings {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ts := timings[name]
		fmt.Fprintf(w, "  %s: %d calls, avg %s, max %s\n",
			name, ts.Count, ts.Average.Round(time.Millisecond), ts.Max.Round(time.Millisecond))
	}
}
