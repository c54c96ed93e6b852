package adapter

import (
	"regexp"
	"strconv"
)

var (
	// priceRe matches currency amounts like "$20" or "$25.50".
	priceRe = regexp.MustCompile(`\$([0-9]+(?:\.[0-9]{1,2})?)`)

	// feeLineRe matches lines that quote a service or booking charge rather
	// than a ticket price.
	feeLineRe = regexp.MustCompile(`(?i)\bfees?\b|\bsurcharge\b`)

	freeRe = regexp.MustCompile(`(?i)\bfree\b`)
)

// minPrice scans text lines for currency amounts and returns the minimum as
// the ticket cost. With excludeFees set, lines quoting fees are skipped
// entirely. Returns nil when no amount is found: absence means "price
// unknown", never zero.
func minPrice(lines []string, excludeFees bool) *float64 {
	var best *float64
	for _, line := range lines {
		if excludeFees && feeLineRe.MatchString(line) {
			continue
		}
		for _, m := range priceRe.FindAllStringSubmatch(line, -1) {
			v, err := strconv.ParseFloat(m[1], 64)
			if err != nil || v < 0 {
				continue
			}
			if best == nil || v < *best {
				amount := v
				best = &amount
			}
		}
	}
	return best
}

// isFree reports whether a price block explicitly advertises a free show.
// Callers map this to a confirmed cost of zero, which is distinct from an
// absent price.
func isFree(text string) bool {
	return freeRe.MatchString(text)
}
