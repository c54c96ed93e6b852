package adapter

import (
	"regexp"
	"strings"
)

// headingPrefixRe matches leading date/time boilerplate some venues put in
// front of the act name, e.g. "SAT JAN 24 • " or "Sat Jan 24, 2026 - ".
var headingPrefixRe = regexp.MustCompile(
	`(?i)^(?:mon|tue|tues|wed|thu|thur|thurs|fri|sat|sun)[a-z]*\.?\s+` +
		`(?:jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\.?\s+` +
		`\d{1,2}(?:,?\s*\d{4})?\s*[-–—•:|]?\s*`)

// stripHeadingPrefix removes leading date boilerplate from a heading so only
// the act name remains.
func stripHeadingPrefix(heading string) string {
	return strings.TrimSpace(headingPrefixRe.ReplaceAllString(heading, ""))
}

var supportRe = regexp.MustCompile(`(?i)^with\s+(.+)$`)

// artistLine derives the artist field from the title and an optional
// support-act line. A "with …" line folds the supports into the artist text;
// otherwise the artist is left empty and defaults to the title downstream.
func artistLine(title, support string) string {
	m := supportRe.FindStringSubmatch(strings.TrimSpace(support))
	if m == nil {
		return ""
	}
	return title + " with " + strings.TrimSpace(m[1])
}
