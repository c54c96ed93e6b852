// Package pipeline drives the scrape-normalize-reconcile loop over a venue
// registry.
//
// Venues are processed strictly one at a time, and candidates within a venue
// one at a time in page order; the only concurrency anywhere is the lock
// heartbeat. A venue whose scrape or window query fails is logged and
// skipped, never aborting the run. A file lock with a TTL keeps two runs
// from interleaving, since the engine's window-query-then-write sequence is
// not safe against a concurrent run of itself.
package pipeline
