// Package candidate provides the types and normalization rules for scraped,
// not-yet-persisted events.
//
// Site adapters emit Raw values with whatever text a venue page happened to
// contain. Normalize canonicalizes that text and computes the dedup key the
// reconciliation engine matches stored rows on: venue, local calendar date,
// and the normalized title.
package candidate
