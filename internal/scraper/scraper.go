package scraper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/citypulse/eventbrite-etl/internal/event"
)

const (
	// BaseURL is the origin relative card links are resolved against.
	BaseURL   = "https://www.eventbrite.com"
	UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
	Timeout   = 30 * time.Second

	// cardSelector matches one event card container on a listing page.
	cardSelector = "div.event-card"

	maxRetries = 2
)

// Scraper fetches Eventbrite listing and detail pages and extracts event
// records from them. One Scraper reuses a single HTTP client across all
// requests in a run.
type Scraper struct {
	client        *http.Client
	baseURL       string
	retryInterval time.Duration
	log           zerolog.Logger
}

// New creates a new Scraper instance.
func New(log zerolog.Logger) *Scraper {
	return &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		baseURL:       BaseURL,
		retryInterval: 500 * time.Millisecond,
		log:           log,
	}
}

// FetchListing retrieves the listings page for a location slug (format
// "country--city", e.g. "portugal--lisbon") and parses up to maxResults
// event cards from it, preserving document order. Transport failures are
// logged and yield an empty slice; a run degrades to "nothing found" rather
// than failing outright.
func (s *Scraper) FetchListing(ctx context.Context, location string, maxResults int) []*event.Record {
	url := fmt.Sprintf("%s/d/%s/events/", s.baseURL, location)

	s.log.Debug().Str("url", url).Msg("fetching listing page")

	body, err := s.get(ctx, url)
	if err != nil {
		s.log.Warn().Err(err).Str("url", url).Msg("listing fetch failed")
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		s.log.Warn().Err(err).Str("url", url).Msg("listing parse failed")
		return nil
	}

	cards := doc.Find(cardSelector)
	if cards.Length() == 0 {
		s.log.Info().Str("location", location).Msg("no event cards found")
		return nil
	}
	if cards.Length() > maxResults {
		cards = cards.Slice(0, maxResults)
	}

	records := make([]*event.Record, 0, cards.Length())
	cards.Each(func(_ int, card *goquery.Selection) {
		if rec := s.parseCard(card); rec != nil {
			records = append(records, rec)
		}
	})

	return records
}

// get issues a GET with the scraper's header and timeout discipline,
// retrying transport errors and server errors a bounded number of times.
// The body is returned fully buffered so a retry never hands back a
// half-read stream.
func (s *Scraper) get(ctx context.Context, url string) ([]byte, error) {
	var body []byte

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		req.Header.Set("User-Agent", UserAgent)

		resp, err := s.client.Do(req)
		if err != nil {
			return fmt.Errorf("fetching page: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("server error: status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("unexpected status code: %d", resp.StatusCode))
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading body: %w", err)
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = s.retryInterval

	if err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(bo, maxRetries), ctx)); err != nil {
		return nil, err
	}
	return body, nil
}
