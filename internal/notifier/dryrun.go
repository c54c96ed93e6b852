package notifier

import (
	"fmt"

	"github.com/mbrevik/gigwire/internal/store"
	"github.com/mbrevik/gigwire/internal/venue"
)

// DryRunNotifier prints what would be posted without actually posting.
type DryRunNotifier struct{}

// NewDryRunNotifier creates a new dry-run notifier.
func NewDryRunNotifier() *DryRunNotifier {
	return &DryRunNotifier{}
}

// Notify prints the posts that would be made.
func (n *DryRunNotifier) Notify(events []*store.EventRow, venues map[string]venue.Venue) error {
	for i, row := range events {
		post := formatPost(row, venues)
		fmt.Printf("--- Post %d/%d ---\n", i+1, len(events))
		fmt.Println(post)
		fmt.Printf("\n(Length: %d characters)\n\n", len(post))
	}
	return nil
}
