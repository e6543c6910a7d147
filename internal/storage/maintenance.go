package storage

import (
	"context"
	"fmt"

	"github.com/citypulse/eventbrite-etl/internal/event"
)

// ListEvents returns up to limit stored events in insertion order. A limit
// of zero or less returns everything.
func (s *Store) ListEvents(ctx context.Context, limit int) ([]*event.Stored, error) {
	query := `SELECT ` + selectColumns + ` FROM events ORDER BY id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()

	events := make([]*event.Stored, 0)
	for rows.Next() {
		evt, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	return events, nil
}

// CountEvents reports how many events are stored.
func (s *Store) CountEvents(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting events: %w", err)
	}
	return count, nil
}

// Clear deletes every stored event and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM events`)
	if err != nil {
		return 0, fmt.Errorf("clearing events: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clearing events: %w", err)
	}
	return deleted, nil
}

// RemoveDuplicates deletes events that share a URL with an earlier event,
// keeping the lowest id of each group. Duplicates can appear when runs race
// against the same store; the pipeline itself never inserts them.
func (s *Store) RemoveDuplicates(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM events
		WHERE url IS NOT NULL
		  AND id NOT IN (
			SELECT MIN(id) FROM events WHERE url IS NOT NULL GROUP BY url
		  )`)
	if err != nil {
		return 0, fmt.Errorf("removing duplicates: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("removing duplicates: %w", err)
	}
	return deleted, nil
}
