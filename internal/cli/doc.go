// Package cli implements the eventbrite-etl command surface.
//
// The run command executes one pipeline run; list, clear and dedup are
// housekeeping commands over the event store. The CLI only translates flags
// and environment variables into pipeline inputs; all scraping and
// persistence semantics live in the internal/etl, internal/scraper and
// internal/storage packages.
package cli
