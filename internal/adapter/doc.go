// Package adapter provides per-venue HTML scrapers that extract candidate
// events from public listing pages.
//
// Each venue gets one Adapter implementation with its own fragile,
// page-specific heuristics for dates, prices, and title/artist splitting.
// The shared contract: a fragment that cannot yield a usable title and date
// is dropped silently and extraction continues, while a fetch failure aborts
// only that venue's scrape. Adapters convert wall-clock times to UTC using
// the venue's declared timezone before handing candidates on.
package adapter
