package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mbrevik/gigwire/internal/candidate"
	"github.com/mbrevik/gigwire/internal/venue"
)

const (
	UserAgent = "gigwire/1.0 (github.com/mbrevik/gigwire)"
	Timeout   = 30 * time.Second
)

// Adapter scrapes one venue's listing into raw candidate events.
type Adapter interface {
	// Venue returns the venue this adapter scrapes.
	Venue() venue.Venue

	// Scrape fetches the venue's listing (and detail pages where the venue
	// requires them) and extracts candidates in page order. Malformed
	// fragments are dropped; only fetch-level failures return an error.
	Scrape(ctx context.Context) ([]candidate.Raw, error)
}

// New constructs the adapter registered under kind for the given venue,
// mirroring the adapter kind named in venue configuration.
func New(kind string, v venue.Venue) (Adapter, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "velvetroom":
		return NewVelvetRoom(v), nil
	case "hollowearth":
		return NewHollowEarth(v), nil
	case "grandannex":
		return NewGrandAnnex(v), nil
	default:
		return nil, fmt.Errorf("unknown adapter kind: %s", kind)
	}
}

func newClient() *http.Client {
	return &http.Client{Timeout: Timeout}
}

// fetchDocument fetches a page and parses it with goquery. Non-2xx responses
// are errors; there are no retries.
func fetchDocument(ctx context.Context, client *http.Client, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}

// resolveURL resolves a possibly relative href against the venue's base URL.
// Unparseable hrefs fall back to the base URL itself.
func resolveURL(baseURL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return baseURL
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return baseURL
	}
	return base.ResolveReference(ref).String()
}
