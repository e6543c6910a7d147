// Package scraper provides HTTP fetching and HTML parsing for Eventbrite
// event listings.
//
// The scraper fetches the public listings page for a location slug, extracts
// one event record per card fragment, and can fetch a bounded-length
// description from an event's detail page. Parsing classifies card
// paragraphs by named predicates (schedule line, venue line) so the markup
// convention stays swappable per source site. All fetches share one client,
// a fixed timeout and bounded retries; failures degrade to empty results
// rather than errors.
package scraper
