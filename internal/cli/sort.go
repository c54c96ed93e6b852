package cli

import (
	"sort"
	"strings"

	"github.com/mbrevik/gigwire/internal/store"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByDate  SortOrder = "date"
	SortByVenue SortOrder = "venue"
	SortByTitle SortOrder = "title"
)

// sortEvents sorts a slice of events based on the specified sort order
func sortEvents(events []*store.EventRow, sortOrder SortOrder) {
	switch sortOrder {
	case SortByDate:
		sort.Slice(events, func(i, j int) bool {
			return compareByDate(events[i], events[j])
		})
	case SortByVenue:
		sort.Slice(events, func(i, j int) bool {
			if events[i].VenueID != events[j].VenueID {
				return events[i].VenueID < events[j].VenueID
			}
			return compareByDate(events[i], events[j])
		})
	case SortByTitle:
		sort.Slice(events, func(i, j int) bool {
			ti := strings.ToLower(events[i].Title)
			tj := strings.ToLower(events[j].Title)
			if ti != tj {
				return ti < tj
			}
			return compareByDate(events[i], events[j])
		})
	}
}

// compareByDate reports whether event i should come before event j.
func compareByDate(i, j *store.EventRow) bool {
	if !i.StartTime.Equal(j.StartTime) {
		return i.StartTime.Before(j.StartTime)
	}
	if i.VenueID != j.VenueID {
		return i.VenueID < j.VenueID
	}
	return strings.ToLower(i.Title) < strings.ToLower(j.Title)
}
