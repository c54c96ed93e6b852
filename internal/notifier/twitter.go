package notifier

import (
	"fmt"
	"os"
	"time"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"

	"github.com/mbrevik/gigwire/internal/store"
	"github.com/mbrevik/gigwire/internal/venue"
)

// TwitterNotifier posts one tweet per new show.
type TwitterNotifier struct {
	client *twitter.Client
}

// NewTwitterNotifier creates a Twitter notifier from environment variables:
// TWITTER_API_KEY, TWITTER_API_SECRET, TWITTER_ACCESS_TOKEN and
// TWITTER_ACCESS_SECRET.
func NewTwitterNotifier() (*TwitterNotifier, error) {
	apiKey := os.Getenv("TWITTER_API_KEY")
	apiSecret := os.Getenv("TWITTER_API_SECRET")
	accessToken := os.Getenv("TWITTER_ACCESS_TOKEN")
	accessSecret := os.Getenv("TWITTER_ACCESS_SECRET")

	if apiKey == "" || apiSecret == "" || accessToken == "" || accessSecret == "" {
		return nil, fmt.Errorf("missing required Twitter credentials in environment variables")
	}

	config := oauth1.NewConfig(apiKey, apiSecret)
	token := oauth1.NewToken(accessToken, accessSecret)
	httpClient := config.Client(oauth1.NoContext, token)
	client := twitter.NewClient(httpClient)

	return &TwitterNotifier{client: client}, nil
}

// Notify posts one tweet per event, pausing between posts to stay inside
// rate limits.
func (n *TwitterNotifier) Notify(events []*store.EventRow, venues map[string]venue.Venue) error {
	for i, row := range events {
		post := formatPost(row, venues)

		_, _, err := n.client.Statuses.Update(post, nil)
		if err != nil {
			return fmt.Errorf("posting tweet for event %s: %w", row.ID, err)
		}

		if i < len(events)-1 {
			time.Sleep(2 * time.Second)
		}
	}

	return nil
}

// formatPost renders one event as a tweet body.
func formatPost(row *store.EventRow, venues map[string]venue.Venue) string {
	venueName := row.VenueID
	start := row.StartTime
	if v, ok := venues[row.VenueID]; ok {
		venueName = v.Name
		start = start.In(v.Location)
	}

	post := "🎸 Just announced!\n\n"
	post += fmt.Sprintf("%s at %s\n", row.Title, venueName)
	post += fmt.Sprintf("📅 %s\n", start.Format("Mon, Jan 2 at 3:04 PM"))

	if row.Cost != nil {
		if *row.Cost == 0 {
			post += "🎟️ Free\n"
		} else {
			post += fmt.Sprintf("🎟️ $%.2f\n", *row.Cost)
		}
	}

	if row.SourceURL != nil && *row.SourceURL != "" {
		post += "\n" + *row.SourceURL
	}

	// Twitter limit is 280 characters.
	if len(post) > 280 {
		post = post[:277] + "..."
	}

	return post
}
