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

// annexDateRe matches the Grand Annex's numeric dates, e.g. "02/15/2026".
var annexDateRe = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`)

// GrandAnnex scrapes the Grand Annex calendar table. One row per show, with
// separate cells for date/time, title, artist, and price. The price cell
// says "Free" for no-cover shows, which is a confirmed cost of zero rather
// than an unknown price.
type GrandAnnex struct {
	venue  venue.Venue
	client *http.Client
}

// NewGrandAnnex creates the Grand Annex adapter.
func NewGrandAnnex(v venue.Venue) *GrandAnnex {
	return &GrandAnnex{
		venue:  v,
		client: newClient(),
	}
}

// Venue returns the venue this adapter scrapes.
func (a *GrandAnnex) Venue() venue.Venue { return a.venue }

// Scrape fetches the calendar page and extracts all parseable rows.
func (a *GrandAnnex) Scrape(ctx context.Context) ([]candidate.Raw, error) {
	doc, err := fetchDocument(ctx, a.client, a.venue.BaseURL)
	if err != nil {
		return nil, err
	}
	return a.parseCalendar(doc), nil
}

// parseCalendar walks the table rows, dropping any row without a usable
// title and date.
func (a *GrandAnnex) parseCalendar(doc *goquery.Document) []candidate.Raw {
	var out []candidate.Raw

	doc.Find("table.calendar tr").Each(func(i int, row *goquery.Selection) {
		titleCell := row.Find("td.title").First()
		title := strings.TrimSpace(titleCell.Text())
		if title == "" {
			return
		}

		start, ok := a.parseWhen(row.Find("td.date").First().Text())
		if !ok {
			return
		}

		sourceURL := a.venue.BaseURL
		if href, exists := titleCell.Find("a").First().Attr("href"); exists {
			sourceURL = resolveURL(a.venue.BaseURL, href)
			// An image-only anchor has no text; keep the cell's title.
			if linkText := strings.TrimSpace(titleCell.Find("a").First().Text()); linkText != "" {
				title = linkText
			}
		}

		priceText := row.Find("td.price").First().Text()
		cost := minPrice([]string{priceText}, false)
		if cost == nil && isFree(priceText) {
			free := 0.0
			cost = &free
		}

		out = append(out, candidate.Raw{
			Title:     title,
			StartTime: start,
			Cost:      cost,
			SourceURL: sourceURL,
			Image:     a.venue.DefaultImage,
			Artist:    strings.TrimSpace(row.Find("td.artist").First().Text()),
		})
	})

	return out
}

// parseWhen parses a cell like "02/15/2026 8:00 PM". Rows always print a
// full year; a missing clock defaults to 8PM.
func (a *GrandAnnex) parseWhen(cell string) (time.Time, bool) {
	m := annexDateRe.FindStringSubmatch(cell)
	if m == nil {
		return time.Time{}, false
	}
	monthNum, err := strconv.Atoi(m[1])
	if err != nil || monthNum < 1 || monthNum > 12 {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(m[2])
	if err != nil || !validDay(day) {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(m[3])
	if err != nil {
		return time.Time{}, false
	}

	hour, minute := 20, 0
	if h, min, ok := pickShowTime(cell); ok {
		hour, minute = h, min
	}

	return time.Date(year, time.Month(monthNum), day, hour, minute, 0, 0, a.venue.Location), true
}
