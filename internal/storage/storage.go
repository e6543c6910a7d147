package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/citypulse/eventbrite-etl/internal/event"
)

const schema = `
CREATE TABLE IF NOT EXISTS events (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	title       TEXT NOT NULL,
	description TEXT,
	location    TEXT,
	address     TEXT,
	date        TEXT,
	time        TEXT,
	url         TEXT,
	source      TEXT NOT NULL,
	category    TEXT,
	created_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_events_title ON events(title);
CREATE INDEX IF NOT EXISTS idx_events_url ON events(url);
`

const selectColumns = `id, title, description, location, address, date, time, url, source, category, created_at`

// Store persists events in a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens the event database at path, creating the file and schema as
// needed. Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); path != ":memory:" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite allows a single writer; one pooled connection also keeps
	// ":memory:" stores coherent across calls.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Begin starts the write transaction covering one pipeline run. Staged
// inserts become visible only on Commit.
func (s *Store) Begin(ctx context.Context) (*Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	return &Tx{tx: tx}, nil
}

// Tx stages one run's lookups and inserts against the events table.
type Tx struct {
	tx *sql.Tx
}

// FindByURL returns the stored event with the given URL, or nil when none
// exists.
func (t *Tx) FindByURL(ctx context.Context, url string) (*event.Stored, error) {
	row := t.tx.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM events WHERE url = ? LIMIT 1`, url)
	return scanEvent(row)
}

// FindByTitleAndSource returns the stored event matching both title and
// source, or nil when none exists. It is the dedup key for records that
// carry no URL.
func (t *Tx) FindByTitleAndSource(ctx context.Context, title, source string) (*event.Stored, error) {
	row := t.tx.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM events WHERE title = ? AND source = ? LIMIT 1`, title, source)
	return scanEvent(row)
}

// Insert stages a new event row. Empty optional fields are stored as NULL;
// created_at is stamped at insertion in UTC.
func (t *Tx) Insert(ctx context.Context, rec *event.Record) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO events (title, description, location, address, date, time, url, source, category, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Title,
		nullable(rec.Description),
		nullable(rec.Location),
		nullable(rec.Address),
		nullable(rec.Date),
		nullable(rec.Time),
		nullable(rec.URL),
		rec.Source,
		nullable(rec.Category),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}
	return nil
}

// Commit makes all staged inserts durable.
func (t *Tx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Rollback discards all staged inserts.
func (t *Tx) Rollback() error {
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("rolling back transaction: %w", err)
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanEvent(row scannable) (*event.Stored, error) {
	var (
		evt                                                      event.Stored
		description, location, address, date, tm, url, category sql.NullString
		createdAt                                                string
	)

	err := row.Scan(
		&evt.ID, &evt.Title, &description, &location, &address,
		&date, &tm, &url, &evt.Source, &category, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning event: %w", err)
	}

	evt.Description = description.String
	evt.Location = location.String
	evt.Address = address.String
	evt.Date = date.String
	evt.Time = tm.String
	evt.URL = url.String
	evt.Category = category.String

	evt.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	return &evt, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
