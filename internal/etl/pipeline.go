package etl

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/citypulse/eventbrite-etl/internal/event"
)

// Fetcher produces event candidates from a listing page and, on demand,
// per-event descriptions from detail pages. Both calls are best-effort and
// never fail a run.
type Fetcher interface {
	FetchListing(ctx context.Context, location string, maxResults int) []*event.Record
	FetchDescription(ctx context.Context, url string) string
}

// Store opens the write transaction covering one run.
type Store interface {
	Begin(ctx context.Context) (Tx, error)
}

// Tx is the narrow persistence surface the pipeline writes through. Staged
// inserts become durable only on Commit; any mid-run failure rolls the
// whole batch back.
type Tx interface {
	FindByURL(ctx context.Context, url string) (*event.Stored, error)
	FindByTitleAndSource(ctx context.Context, title, source string) (*event.Stored, error)
	Insert(ctx context.Context, rec *event.Record) error
	Commit() error
	Rollback() error
}

// Pipeline orchestrates one scrape-dedup-store run.
type Pipeline struct {
	fetcher Fetcher
	store   Store
	metrics *Metrics
	log     zerolog.Logger
}

// New creates a Pipeline. metrics may be shared across pipelines; it must
// not be nil.
func New(fetcher Fetcher, store Store, metrics *Metrics, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		fetcher: fetcher,
		store:   store,
		metrics: metrics,
		log:     log,
	}
}

// Run fetches event candidates for a location, filters out in-batch and
// already-stored duplicates, optionally enriches survivors with detail-page
// descriptions, and commits the new records in a single transaction. It
// returns the number of newly stored events.
//
// A listing page yielding zero candidates is a successful no-op and opens
// no transaction. A persistence failure rolls back the entire batch and is
// returned to the caller; it is never reported as a silent zero.
func (p *Pipeline) Run(ctx context.Context, location string, maxResults int, fetchDescriptions bool) (int, error) {
	p.log.Info().Str("location", location).Int("max_results", maxResults).Msg("starting run")

	candidates := p.fetcher.FetchListing(ctx, location, maxResults)
	if len(candidates) == 0 {
		p.log.Info().Str("location", location).Msg("no events found")
		return 0, nil
	}

	p.metrics.CandidatesFetched.Add(float64(len(candidates)))
	p.log.Info().Int("count", len(candidates)).Str("location", location).Msg("fetched event candidates")

	tx, err := p.store.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("beginning run transaction: %w", err)
	}

	stored, err := p.process(ctx, tx, candidates, location, fetchDescriptions)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			p.log.Error().Err(rbErr).Msg("rollback failed")
		}
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			p.log.Error().Err(rbErr).Msg("rollback failed")
		}
		return 0, fmt.Errorf("committing run: %w", err)
	}

	p.metrics.EventsStored.Add(float64(stored))
	p.log.Info().Int("stored", stored).Str("location", location).Msg("run committed")
	return stored, nil
}

// process walks the candidates in document order, staging every survivor
// as an insert on tx. Enrichment calls are issued one at a time so per-run
// load on the source site stays bounded and the dedup set mutates
// deterministically.
func (p *Pipeline) process(ctx context.Context, tx Tx, candidates []*event.Record, location string, fetchDescriptions bool) (int, error) {
	stored := 0
	seen := make(map[string]struct{}, len(candidates))

	for _, cand := range candidates {
		if cand.Title == "" {
			continue
		}
		cand.Location = location

		if cand.URL != "" {
			if _, dup := seen[cand.URL]; dup {
				p.metrics.BatchDuplicates.Inc()
				p.log.Debug().Str("title", cand.Title).Msg("skipping duplicate in batch")
				continue
			}
			seen[cand.URL] = struct{}{}
		}

		existing, err := p.findExisting(ctx, tx, cand)
		if err != nil {
			return 0, fmt.Errorf("checking for stored duplicate of %q: %w", cand.Title, err)
		}
		if existing != nil {
			p.metrics.StoreDuplicates.Inc()
			p.log.Debug().Str("title", cand.Title).Msg("skipping duplicate in store")
			continue
		}

		if fetchDescriptions && cand.URL != "" {
			cand.Description = p.fetcher.FetchDescription(ctx, cand.URL)
		}

		if err := tx.Insert(ctx, cand); err != nil {
			return 0, fmt.Errorf("storing %q: %w", cand.Title, err)
		}
		stored++
		p.log.Info().Str("title", cand.Title).Msg("stored event")
	}

	return stored, nil
}

// findExisting looks the candidate up in the store by URL, falling back to
// title plus source for records without one.
func (p *Pipeline) findExisting(ctx context.Context, tx Tx, cand *event.Record) (*event.Stored, error) {
	if cand.URL != "" {
		return tx.FindByURL(ctx, cand.URL)
	}
	return tx.FindByTitleAndSource(ctx, cand.Title, cand.Source)
}
