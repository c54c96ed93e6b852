// Package notifier announces newly ingested shows.
//
// Notifiers receive the rows the pipeline inserted during a run. The Twitter
// implementation handles OAuth, post formatting and spacing between posts;
// the dry-run implementation prints what would have been posted.
package notifier
