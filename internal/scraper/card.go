package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/citypulse/eventbrite-etl/internal/event"
)

const (
	// linkSelector matches the card's primary link, which carries the event
	// URL and category attribute.
	linkSelector    = "a.event-card-link"
	headingSelector = "h2, h3, h4"

	// paragraphSelector matches the typography paragraphs holding the
	// schedule, venue and price lines.
	paragraphSelector = "p[class*='Typography_root']"

	// bullet separates the date and time halves of a card's schedule line.
	bullet = "•"
)

// parseCard extracts one event record from a single listing-card fragment.
// It returns nil when the card lacks the link or heading that identify an
// event: an unparsable card is a filtering decision, not an error, and a
// single bad card never aborts the batch.
func (s *Scraper) parseCard(card *goquery.Selection) (rec *event.Record) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Warn().Interface("panic", r).Msg("card parse panicked, skipping card")
			rec = nil
		}
	}()

	link := card.Find(linkSelector).First()
	if link.Length() == 0 {
		return nil
	}

	title := strings.TrimSpace(card.Find(headingSelector).First().Text())
	if title == "" {
		return nil
	}

	rec = &event.Record{
		Title:    title,
		URL:      resolveURL(s.baseURL, link.AttrOr("href", "")),
		Source:   event.Source,
		Category: event.NormalizeCategory(link.AttrOr("data-event-category", "")),
	}

	card.Find(paragraphSelector).EachWithBreak(func(_ int, p *goquery.Selection) bool {
		text := strings.TrimSpace(p.Text())

		switch {
		case isScheduleLine(text):
			if date, tm, ok := splitSchedule(text); ok {
				rec.Date = date
				rec.Time = tm
			}
		case isVenueLine(p):
			rec.Address = text
			return false // venue line ends the scan
		}
		return true
	})

	return rec
}

// isScheduleLine reports whether a paragraph carries the card's date and
// time, recognized by the bullet separator plus a meridiem marker.
func isScheduleLine(text string) bool {
	return strings.Contains(text, bullet) &&
		(strings.Contains(text, "AM") || strings.Contains(text, "PM"))
}

// splitSchedule splits a line like "Fri, Nov 28 •  11:00 PM" into its date
// and time halves. Lines that do not split into exactly two parts are
// malformed and reported not ok rather than guessed at.
func splitSchedule(text string) (date, tm string, ok bool) {
	parts := strings.Split(text, bullet)
	if len(parts) != 2 {
		return "", "", false
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true
}

// isVenueLine reports whether a paragraph is the venue name, recognized by
// the clamped-display styling Eventbrite applies to it.
func isVenueLine(p *goquery.Selection) bool {
	return strings.Contains(p.AttrOr("class", ""), "clamp-line")
}

// resolveURL turns a card link href into an absolute URL. Absolute hrefs
// pass through, site-relative paths get the base origin prefixed, and
// anything else yields an empty URL.
func resolveURL(base, href string) string {
	switch {
	case href == "":
		return ""
	case strings.HasPrefix(href, "http"):
		return href
	case strings.HasPrefix(href, "/"):
		return base + href
	default:
		return ""
	}
}
