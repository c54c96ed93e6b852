package adapter

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// monthNames maps both abbreviated and full month names, lower-cased.
var monthNames = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

// monthByName resolves a month name fragment like "JAN" or "January".
func monthByName(name string) (time.Month, bool) {
	m, ok := monthNames[strings.ToLower(strings.TrimSpace(name))]
	return m, ok
}

// clockRe matches clock tokens like "8PM", "7:30pm", "10:00 AM".
var clockRe = regexp.MustCompile(`(?i)(\d{1,2})(?::(\d{2}))?\s*(am|pm)`)

// clock is one parsed clock token plus where it sat in the source text.
type clock struct {
	hour, minute int
	start, end   int
}

// parseClocks extracts every clock token from a block of text, converted to
// 24-hour values. Tokens with out-of-range components are skipped.
func parseClocks(text string) []clock {
	var out []clock
	for _, m := range clockRe.FindAllStringSubmatchIndex(text, -1) {
		hour, err := strconv.Atoi(text[m[2]:m[3]])
		if err != nil || hour < 1 || hour > 12 {
			continue
		}
		minute := 0
		if m[4] >= 0 {
			minute, err = strconv.Atoi(text[m[4]:m[5]])
			if err != nil || minute > 59 {
				continue
			}
		}
		meridiem := strings.ToLower(text[m[6]:m[7]])
		if meridiem == "pm" && hour != 12 {
			hour += 12
		}
		if meridiem == "am" && hour == 12 {
			hour = 0
		}
		out = append(out, clock{hour: hour, minute: minute, start: m[0], end: m[1]})
	}
	return out
}

var (
	showLabelRe = regexp.MustCompile(`(?i)\bshow\b`)
	doorLabelRe = regexp.MustCompile(`(?i)\bdoors?\b`)
)

// pickShowTime chooses the performance start time from a line that may carry
// several clock tokens, e.g. "8PM DOOR, 9PM SHOW" or
// "Doors 7:30pm / Show 8:30pm". A time labeled "show" always wins over one
// labeled "door": attendees care about when the performance starts, not when
// the doors open. With no labels the first time on the line is used.
func pickShowTime(text string) (hour, minute int, ok bool) {
	clocks := parseClocks(text)
	if len(clocks) == 0 {
		return 0, 0, false
	}

	showLabels := showLabelRe.FindAllStringIndex(text, -1)
	doorLabels := doorLabelRe.FindAllStringIndex(text, -1)

	// A label qualifies the clock token it sits closest to, whether it
	// precedes ("Show 8:30pm") or follows ("9PM SHOW") it.
	var unlabeled *clock
	for i, c := range clocks {
		showDist := labelDistance(showLabels, c)
		doorDist := labelDistance(doorLabels, c)
		if showDist < doorDist {
			return c.hour, c.minute, true
		}
		if doorDist == showDist && unlabeled == nil {
			unlabeled = &clocks[i]
		}
	}

	if unlabeled != nil {
		return unlabeled.hour, unlabeled.minute, true
	}
	c := clocks[0]
	return c.hour, c.minute, true
}

// labelDistance returns the character gap between a clock token and the
// nearest label occurrence, or a large sentinel when no label is present.
func labelDistance(labels [][]int, c clock) int {
	best := 1 << 30
	for _, l := range labels {
		var d int
		switch {
		case l[0] >= c.end:
			d = l[0] - c.end
		case l[1] <= c.start:
			d = c.start - l[1]
		default:
			d = 0
		}
		if d < best {
			best = d
		}
	}
	return best
}

// inferYear picks a year for a date that omitted one. Listings only ever
// advertise upcoming shows, so a month far behind the current one means the
// next calendar year rather than an event in the past.
func inferYear(month time.Month, now time.Time) int {
	if int(now.Month())-int(month) > 6 {
		return now.Year() + 1
	}
	return now.Year()
}

// validDay bounds-checks a numeric day component.
func validDay(day int) bool {
	return day >= 1 && day <= 31
}
