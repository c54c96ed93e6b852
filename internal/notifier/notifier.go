package notifier

import (
	"github.com/mbrevik/gigwire/internal/store"
	"github.com/mbrevik/gigwire/internal/venue"
)

// Notifier posts announcements for newly inserted events.
type Notifier interface {
	// Notify announces the given events. Venues maps venue IDs to their
	// definitions so posts can show names and local times.
	Notify(events []*store.EventRow, venues map[string]venue.Venue) error
}
