// Package calendar renders ingested shows as an iCalendar feed.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/mbrevik/gigwire/internal/store"
	"github.com/mbrevik/gigwire/internal/venue"
)

// defaultDuration is used for DTEND since listings never carry an end time.
const defaultDuration = 3 * time.Hour

// GenerateICS renders the given events as one iCalendar document. Venues
// supplies display names and locations for the VEVENT fields.
func GenerateICS(events []*store.EventRow, venues map[string]venue.Venue) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//gigwire//gigwire//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")

	now := time.Now().UTC()
	for _, row := range events {
		writeEvent(&ics, row, venues, now)
	}

	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String()
}

func writeEvent(ics *strings.Builder, row *store.EventRow, venues map[string]venue.Venue, now time.Time) {
	venueName := row.VenueID
	if v, ok := venues[row.VenueID]; ok {
		venueName = v.Name
	}

	ics.WriteString("BEGIN:VEVENT\r\n")
	ics.WriteString(fmt.Sprintf("UID:%s@gigwire\r\n", row.ID))
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", formatICSTime(now)))
	ics.WriteString(fmt.Sprintf("DTSTART:%s\r\n", formatICSTime(row.StartTime)))
	ics.WriteString(fmt.Sprintf("DTEND:%s\r\n", formatICSTime(row.StartTime.Add(defaultDuration))))
	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(row.Title)))

	description := fmt.Sprintf("%s at %s", row.Title, venueName)
	if row.Cost != nil {
		if *row.Cost == 0 {
			description += "\nFree"
		} else {
			description += fmt.Sprintf("\nTickets: $%.2f", *row.Cost)
		}
	}
	if row.Description != nil && *row.Description != "" {
		description += "\n\n" + *row.Description
	}
	ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(description)))

	ics.WriteString(fmt.Sprintf("LOCATION:%s\r\n", escapeICS(venueName)))
	if row.SourceURL != nil && *row.SourceURL != "" {
		ics.WriteString(fmt.Sprintf("URL:%s\r\n", *row.SourceURL))
	}
	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("SEQUENCE:0\r\n")
	ics.WriteString("TRANSP:OPAQUE\r\n")
	ics.WriteString("END:VEVENT\r\n")
}

// formatICSTime formats a time.Time as an iCalendar datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS escapes special characters for iCalendar format
func escapeICS(s string) string {
	// Replace special characters according to RFC 5545
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
