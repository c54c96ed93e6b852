// Package reconcile decides, for each scraped candidate, whether to insert a
// new event row, update an existing one in place, or leave the store alone.
//
// Matching uses the dedup key (venue, local calendar date, normalized title)
// against all stored rows inside the batch's widened time window, fetched in
// one query and indexed up front. For a given venue at most one persisted row
// ever carries a given key; the engine is the only thing enforcing that, so
// inserted rows join the index immediately and duplicate candidates later in
// the same batch reconcile against them instead of inserting again.
package reconcile
