package adapter

import (
	"context"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mbrevik/gigwire/internal/candidate"
	"github.com/mbrevik/gigwire/internal/venue"
)

// velvetDateRe matches the date part of a Velvet Room billing line like
// "SAT JAN 24, 2026 • 8PM DOOR, 9PM SHOW". The year is optional.
var velvetDateRe = regexp.MustCompile(
	`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\.?\s+(\d{1,2})(?:,?\s*(\d{4}))?`)

// VelvetRoom scrapes The Velvet Room's single listing page. Every show is a
// card carrying a billing line (date, door and show times), the act heading,
// an optional support line, and a price blurb that mixes ticket prices with
// service-fee fine print.
type VelvetRoom struct {
	venue  venue.Venue
	client *http.Client
	now    func() time.Time
}

// NewVelvetRoom creates the Velvet Room adapter.
func NewVelvetRoom(v venue.Venue) *VelvetRoom {
	return &VelvetRoom{
		venue:  v,
		client: newClient(),
		now:    time.Now,
	}
}

// Venue returns the venue this adapter scrapes.
func (a *VelvetRoom) Venue() venue.Venue { return a.venue }

// Scrape fetches the listing page and extracts all parseable show cards.
func (a *VelvetRoom) Scrape(ctx context.Context) ([]candidate.Raw, error) {
	doc, err := fetchDocument(ctx, a.client, a.venue.BaseURL)
	if err != nil {
		return nil, err
	}
	return a.parseListing(doc), nil
}

// parseListing walks the show cards. Cards without a usable title and date
// are dropped and parsing continues with the next card.
func (a *VelvetRoom) parseListing(doc *goquery.Document) []candidate.Raw {
	var out []candidate.Raw

	doc.Find("div.event-card").Each(func(i int, card *goquery.Selection) {
		title := stripHeadingPrefix(strings.TrimSpace(card.Find("h2.event-title").First().Text()))
		if title == "" {
			return
		}

		billing := strings.TrimSpace(card.Find(".event-date").First().Text())
		start, ok := a.parseBilling(billing)
		if !ok {
			return
		}

		sourceURL := a.venue.BaseURL
		if href, exists := card.Find("a").First().Attr("href"); exists {
			sourceURL = resolveURL(a.venue.BaseURL, href)
		}

		image := a.venue.DefaultImage
		if src, exists := card.Find("img").First().Attr("src"); exists && strings.TrimSpace(src) != "" {
			image = resolveURL(a.venue.BaseURL, src)
		}

		priceLines := strings.Split(card.Find(".event-price").First().Text(), "\n")

		out = append(out, candidate.Raw{
			Title:       title,
			Description: strings.TrimSpace(card.Find(".event-description").First().Text()),
			StartTime:   start,
			Cost:        minPrice(priceLines, true),
			SourceURL:   sourceURL,
			Image:       image,
			Artist:      artistLine(title, card.Find(".event-support").First().Text()),
		})
	})

	return out
}

// parseBilling extracts the performance start from a billing line. The show
// time wins over the door time; a line with a date but no clock defaults to
// an 8PM start, the house standard.
func (a *VelvetRoom) parseBilling(line string) (time.Time, bool) {
	m := velvetDateRe.FindStringSubmatch(line)
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

	year := 0
	if m[3] != "" {
		year, err = strconv.Atoi(m[3])
		if err != nil {
			return time.Time{}, false
		}
	} else {
		year = inferYear(month, a.now())
	}

	hour, minute := 20, 0
	if h, min, ok := pickShowTime(line); ok {
		hour, minute = h, min
	}

	return time.Date(year, month, day, hour, minute, 0, 0, a.venue.Location), true
}
