package scraper

import (
	"bytes"
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/citypulse/eventbrite-etl/internal/event"
)

// descriptionSelectors are tried in order on a detail page; first match wins.
var descriptionSelectors = []string{
	"#event-description",
	"div.event-description",
	"div.summary",
}

// FetchDescription retrieves a bounded-length description from an event's
// detail page. It is best-effort: any transport or parse failure yields an
// empty string and the record simply goes without a description.
func (s *Scraper) FetchDescription(ctx context.Context, url string) string {
	body, err := s.get(ctx, url)
	if err != nil {
		s.log.Debug().Err(err).Str("url", url).Msg("description fetch failed")
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		s.log.Debug().Err(err).Str("url", url).Msg("description parse failed")
		return ""
	}

	for _, sel := range descriptionSelectors {
		node := doc.Find(sel).First()
		if node.Length() == 0 {
			continue
		}
		return event.TruncateDescription(strings.TrimSpace(node.Text()))
	}

	return ""
}
