package candidate

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// CollapseSpace trims a string and collapses internal runs of whitespace to
// a single space. Text is NFC-normalized first so visually identical titles
// scraped with different Unicode compositions compare equal.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

// NormalizeTitle lower-cases and whitespace-collapses a title. Two titles
// that normalize identically are the same logical event on a given venue
// and date.
func NormalizeTitle(s string) string {
	return strings.ToLower(CollapseSpace(s))
}
