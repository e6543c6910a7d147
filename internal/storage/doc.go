// Package storage persists events in a SQLite database.
//
// The store exposes one write transaction per pipeline run: lookups and
// inserts go through a Tx so an entire batch commits atomically or rolls
// back as a whole. Maintenance operations (list, count, clear, duplicate
// removal) run outside run transactions and back the CLI's housekeeping
// commands.
package storage
