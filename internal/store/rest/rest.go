// Package rest implements the persistence gateway against the site's HTTP
// API. Every call here maps to one endpoint of the events service.
package rest

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mbrevik/gigwire/internal/store"
)

// Client talks to the events API. It satisfies both store.EventStore and
// store.ArtistStore.
type Client struct {
	http *resty.Client
}

// New builds a client against the API root. The token is sent as a bearer
// token on every request. Retries stay disabled on purpose: a failed write
// surfaces as a failed candidate instead of being replayed.
func New(baseURL, token string) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(token).
		SetTimeout(30 * time.Second).
		SetRetryCount(0)
	return &Client{http: c}
}

// eventBody is the wire form of an event row. Field names follow the API's
// JSON contract.
type eventBody struct {
	ID              string   `json:"id,omitempty"`
	VenueID         string   `json:"venue_id"`
	StartTime       string   `json:"start_time"`
	Title           string   `json:"title"`
	Description     *string  `json:"description"`
	Cost            *float64 `json:"cost"`
	SourceURL       *string  `json:"source_url"`
	ArtistID        *string  `json:"artist_id"`
	Image           *string  `json:"image"`
	Status          string   `json:"status"`
	SourceType      string   `json:"source_type"`
	IngestionStatus string   `json:"ingestion_status"`
}

type artistBody struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Bio       *string   `json:"bio"`
	Image     *string   `json:"image"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Client) EventsInRange(ctx context.Context, venueID string, min, max time.Time) ([]*store.EventRow, error) {
	var body []eventBody
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"venue_id": venueID,
			"from":     min.UTC().Format(time.RFC3339),
			"to":       max.UTC().Format(time.RFC3339),
		}).
		SetResult(&body).
		Get("/events")
	if err != nil {
		return nil, fmt.Errorf("fetching events: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetching events: status %d: %s", resp.StatusCode(), resp.String())
	}
	out := make([]*store.EventRow, 0, len(body))
	for i := range body {
		row, err := rowFromBody(&body[i])
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

func (c *Client) CreateEvent(ctx context.Context, patch store.EventPatch) (*store.EventRow, error) {
	var body eventBody
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(bodyFromPatch(patch)).
		SetResult(&body).
		Post("/events")
	if err != nil {
		return nil, fmt.Errorf("creating event: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("creating event: status %d: %s", resp.StatusCode(), resp.String())
	}
	return rowFromBody(&body)
}

func (c *Client) UpdateEvent(ctx context.Context, id string, patch store.EventPatch) (*store.EventRow, error) {
	var body eventBody
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(bodyFromPatch(patch)).
		SetResult(&body).
		SetPathParam("id", id).
		Put("/events/{id}")
	if err != nil {
		return nil, fmt.Errorf("updating event %s: %w", id, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("updating event %s: status %d: %s", id, resp.StatusCode(), resp.String())
	}
	return rowFromBody(&body)
}

func (c *Client) ArtistByName(ctx context.Context, name string) (*store.Artist, error) {
	var body artistBody
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("name", name).
		SetResult(&body).
		Get("/artists/lookup")
	if err != nil {
		return nil, fmt.Errorf("looking up artist: %w", err)
	}
	if resp.StatusCode() == 404 {
		return nil, nil
	}
	if resp.IsError() {
		return nil, fmt.Errorf("looking up artist: status %d: %s", resp.StatusCode(), resp.String())
	}
	return artistFromBody(&body), nil
}

func (c *Client) CreateArtist(ctx context.Context, name string) (*store.Artist, error) {
	var body artistBody
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"name": name}).
		SetResult(&body).
		Post("/artists")
	if err != nil {
		return nil, fmt.Errorf("creating artist %q: %w", name, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("creating artist %q: status %d: %s", name, resp.StatusCode(), resp.String())
	}
	return artistFromBody(&body), nil
}

func bodyFromPatch(p store.EventPatch) eventBody {
	return eventBody{
		VenueID:         p.VenueID,
		StartTime:       p.StartTime.UTC().Format(time.RFC3339),
		Title:           p.Title,
		Description:     p.Description,
		Cost:            p.Cost,
		SourceURL:       p.SourceURL,
		ArtistID:        p.ArtistID,
		Image:           p.Image,
		Status:          string(p.Status),
		SourceType:      string(p.SourceType),
		IngestionStatus: string(p.IngestionStatus),
	}
}

func rowFromBody(b *eventBody) (*store.EventRow, error) {
	start, err := time.Parse(time.RFC3339, b.StartTime)
	if err != nil {
		return nil, fmt.Errorf("parsing start_time %q: %w", b.StartTime, err)
	}
	return &store.EventRow{
		ID:              b.ID,
		VenueID:         b.VenueID,
		StartTime:       start.UTC(),
		Title:           b.Title,
		Description:     b.Description,
		Cost:            b.Cost,
		SourceURL:       b.SourceURL,
		ArtistID:        b.ArtistID,
		Image:           b.Image,
		Status:          store.Status(b.Status),
		SourceType:      store.SourceType(b.SourceType),
		IngestionStatus: store.IngestionStatus(b.IngestionStatus),
	}, nil
}

func artistFromBody(b *artistBody) *store.Artist {
	return &store.Artist{
		ID:        b.ID,
		Name:      b.Name,
		Bio:       b.Bio,
		Image:     b.Image,
		CreatedAt: b.CreatedAt,
	}
}
