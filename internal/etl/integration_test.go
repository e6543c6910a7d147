package etl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citypulse/eventbrite-etl/internal/event"
	"github.com/citypulse/eventbrite-etl/internal/storage"
)

// sqliteStore bridges the concrete store into the pipeline's Store
// interface for integration tests.
type sqliteStore struct {
	store *storage.Store
}

func (a sqliteStore) Begin(ctx context.Context) (Tx, error) {
	return a.store.Begin(ctx)
}

func newSQLiteStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRunIdempotent(t *testing.T) {
	store := newSQLiteStore(t)
	fetcher := &fakeFetcher{records: []*event.Record{
		candidate("Jazz Night", "https://x/e1"),
		candidate("Food Festival", "https://x/e2"),
		candidate("Street Market", ""),
	}}
	pipe, _ := newTestPipeline(fetcher, sqliteStore{store: store})
	ctx := context.Background()

	first, err := pipe.Run(ctx, "portugal--lisbon", 50, false)
	require.NoError(t, err)
	assert.Equal(t, 3, first)

	// An unchanged listing stores nothing on the second run: URL-bearing
	// candidates match stored URLs, the URL-less one matches on title and
	// source.
	second, err := pipe.Run(ctx, "portugal--lisbon", 50, false)
	require.NoError(t, err)
	assert.Zero(t, second)

	count, err := store.CountEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestRunAgainstPrepopulatedStore(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	// The store already holds https://x/e1 from an earlier run.
	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Insert(ctx, &event.Record{
		Title:  "Jazz Night",
		URL:    "https://x/e1",
		Source: event.Source,
	}))
	require.NoError(t, tx.Commit())

	fetcher := &fakeFetcher{records: []*event.Record{
		candidate("Jazz Night", "https://x/e1"),
		candidate("Food Festival", "https://x/e2"),
	}}
	pipe, _ := newTestPipeline(fetcher, sqliteStore{store: store})

	count, err := pipe.Run(ctx, "portugal--lisbon", 50, false)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "the refetched card is excluded")

	total, err := store.CountEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestRunStampsAndPersistsFields(t *testing.T) {
	store := newSQLiteStore(t)
	fetcher := &fakeFetcher{
		records: []*event.Record{{
			Title:    "Fado Night",
			Address:  "Casa do Fado",
			Date:     "Thu, Dec 4",
			Time:     "9:30 PM",
			URL:      "https://x/fado",
			Source:   event.Source,
			Category: "Live Music",
		}},
		descriptions: map[string]string{
			"https://x/fado": "Traditional fado with dinner.",
		},
	}
	pipe, _ := newTestPipeline(fetcher, sqliteStore{store: store})
	ctx := context.Background()

	count, err := pipe.Run(ctx, "portugal--lisbon", 50, true)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	events, err := store.ListEvents(ctx, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)

	got := events[0]
	assert.Equal(t, "Fado Night", got.Title)
	assert.Equal(t, "portugal--lisbon", got.Location)
	assert.Equal(t, "Traditional fado with dinner.", got.Description)
	assert.Equal(t, "Casa do Fado", got.Address)
	assert.Equal(t, "Live Music", got.Category)
}
