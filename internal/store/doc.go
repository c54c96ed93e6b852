// Package store defines the persistence gateway consumed by the scraping
// pipeline: durable event rows, artist rows, and the interfaces the
// reconciliation engine issues reads and writes through.
//
// The pipeline never talks to a database directly. Concrete backends live in
// the subpackages memory (tests and dry runs), postgres (pgx), and rest
// (HTTP gateway client); all durable state sits behind these interfaces.
package store
