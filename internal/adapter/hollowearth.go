package adapter

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mbrevik/gigwire/internal/candidate"
	"github.com/mbrevik/gigwire/internal/venue"
)

// HollowEarth scrapes Hollow Earth Hall. The listing page is a bare list of
// links; everything usable (date, times, price, description) lives on a
// detail page per show, so each candidate costs one extra fetch. Dates on
// detail pages omit the year.
type HollowEarth struct {
	venue  venue.Venue
	client *http.Client
	now    func() time.Time
}

// NewHollowEarth creates the Hollow Earth Hall adapter.
func NewHollowEarth(v venue.Venue) *HollowEarth {
	return &HollowEarth{
		venue:  v,
		client: newClient(),
		now:    time.Now,
	}
}

// Venue returns the venue this adapter scrapes.
func (a *HollowEarth) Venue() venue.Venue { return a.venue }

// Scrape fetches the listing, then each show's detail page in list order.
// A detail page that fails to fetch or parse drops that one show.
func (a *HollowEarth) Scrape(ctx context.Context) ([]candidate.Raw, error) {
	doc, err := fetchDocument(ctx, a.client, a.venue.BaseURL)
	if err != nil {
		return nil, err
	}

	var out []candidate.Raw
	for _, link := range a.parseListing(doc) {
		detail, err := fetchDocument(ctx, a.client, link)
		if err != nil {
			continue
		}
		if raw, ok := a.parseDetail(detail, link); ok {
			out = append(out, raw)
		}
	}
	return out, nil
}

// parseListing collects detail-page links in page order.
func (a *HollowEarth) parseListing(doc *goquery.Document) []string {
	var links []string
	doc.Find("ul.shows li a").Each(func(i int, sel *goquery.Selection) {
		if href, exists := sel.Attr("href"); exists && strings.TrimSpace(href) != "" {
			links = append(links, resolveURL(a.venue.BaseURL, href))
		}
	})
	return links
}

// parseDetail extracts one candidate from a show detail page.
func (a *HollowEarth) parseDetail(doc *goquery.Document, sourceURL string) (candidate.Raw, bool) {
	title := strings.TrimSpace(doc.Find("h1.show-title").First().Text())
	if title == "" {
		return candidate.Raw{}, false
	}

	start, ok := a.parseWhen(
		doc.Find(".show-date").First().Text(),
		doc.Find(".show-times").First().Text(),
	)
	if !ok {
		return candidate.Raw{}, false
	}

	image := a.venue.DefaultImage
	if src, exists := doc.Find("img.show-poster").First().Attr("src"); exists && strings.TrimSpace(src) != "" {
		image = resolveURL(a.venue.BaseURL, src)
	}

	priceText := doc.Find(".show-price").First().Text()
	cost := minPrice(strings.Split(priceText, "\n"), true)
	if cost == nil && isFree(priceText) {
		free := 0.0
		cost = &free
	}

	return candidate.Raw{
		Title:       title,
		Description: strings.TrimSpace(doc.Find(".show-description").First().Text()),
		StartTime:   start,
		Cost:        cost,
		SourceURL:   sourceURL,
		Image:       image,
		Artist:      artistLine(title, doc.Find(".show-support").First().Text()),
	}, true
}

// parseWhen combines a date like "January 24" with a times line like
// "Doors 7:30pm / Show 8:30pm". Years are never printed, so the year is
// inferred with the rollover rule; the show time is authoritative.
func (a *HollowEarth) parseWhen(dateText, timesText string) (time.Time, bool) {
	m := velvetDateRe.FindStringSubmatch(dateText)
	if m == nil {
		return time.Time{}, false
	}
	month, ok := monthByName(m[1])
	if !ok {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(m[2])
	if err != nil || !validDay(day) {
		return time.Time{}, false
	}

	year := inferYear(month, a.now())
	if m[3] != "" {
		if y, err := strconv.Atoi(m[3]); err == nil {
			year = y
		}
	}

	hour, minute, ok := pickShowTime(timesText)
	if !ok {
		return time.Time{}, false
	}

	return time.Date(year, month, day, hour, minute, 0, 0, a.venue.Location), true
}
