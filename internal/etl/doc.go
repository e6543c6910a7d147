// Package etl orchestrates the scrape-dedup-store pipeline.
//
// One run fetches event candidates for a location, discards candidates
// without a title, deduplicates first against the batch (by URL) and then
// against the store (by URL, or by title and source when no URL exists),
// optionally enriches survivors with detail-page descriptions, and commits
// everything in a single transaction. The fetcher and store are injected
// interfaces so callers and tests control both collaborators.
package etl
