// Package venue defines the venue model shared by the adapters and the
// pipeline. Venues are plain configuration passed in at startup; there is no
// package-level registry.
package venue

import (
	"fmt"
	"time"
)

// Venue describes one scraped venue.
type Venue struct {
	ID           string
	Name         string
	BaseURL      string
	Location     *time.Location
	DefaultImage string
}

// New builds a Venue, resolving tz as an IANA timezone name. Every venue
// declares its timezone explicitly so wall-clock times on its pages convert
// to UTC the same way regardless of where the process runs.
func New(id, name, baseURL, tz, defaultImage string) (Venue, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return Venue{}, fmt.Errorf("venue %s: loading timezone %q: %w", id, tz, err)
	}
	return Venue{
		ID:           id,
		Name:         name,
		BaseURL:      baseURL,
		Location:     loc,
		DefaultImage: defaultImage,
	}, nil
}
