// Package cli implements the command-line interface for gigwire.
//
// The cli package provides the Cobra-based CLI that loads configuration,
// builds the venue adapter registry and storage backend, runs the ingestion
// pipeline under a run lock, formats the run summary (text/JSON) and hands
// newly inserted shows to the notifier.
package cli
