package main

import (
	"fmt"
	"os"
	"time"

	"github.com/mbrevik/gigwire/internal/calendar"
	"github.com/mbrevik/gigwire/internal/store"
	"github.com/mbrevik/gigwire/internal/venue"
)

func main() {
	// Create a sample event
	v, err := venue.New("velvetroom", "The Velvet Room", "https://velvetroom.example", "America/New_York", "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building venue: %v\n", err)
		os.Exit(1)
	}

	cost := 25.0
	url := "https://velvetroom.example/shows/midnights"
	rows := []*store.EventRow{{
		ID:        "preview-event-123",
		VenueID:   "velvetroom",
		Title:     "The Midnights with Static Bloom",
		StartTime: time.Date(2026, 3, 15, 1, 0, 0, 0, time.UTC),
		Cost:      &cost,
		SourceURL: &url,
	}}

	icsContent := calendar.GenerateICS(rows, map[string]venue.Venue{v.ID: v})

	filename := "preview-event.ics"
	if err := os.WriteFile(filename, []byte(icsContent), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Generated calendar file: %s\n\n", filename)
	fmt.Println("Test it by:")
	fmt.Println("1. Open the .ics file with your calendar app (double-click)")
	fmt.Println("2. Or import it into Google Calendar, Apple Calendar, or Outlook")
	fmt.Println("\nFile contents preview:")
	fmt.Println("---")
	fmt.Println(icsContent)
}
