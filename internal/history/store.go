// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// SCHEMA
// =============================================================================

// Schema is the history database schema.
const Schema = `
CREATE TABLE IF NOT EXISTS analyses (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	request_id TEXT NOT NULL,
	timestamp INTEGER NOT NULL,
	preview TEXT NOT NULL,
	model TEXT NOT NULL,
	latency_ns INTEGER NOT NULL,
	input_tokens INTEGER NOT NULL,
	output_tokens INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_analyses_timestamp ON analyses(timestamp);
`

// =============================================================================
// STORE
// =============================================================================

// Store persists analysis history to a SQLite database.
type Store struct {
	db *sql.DB
}

// OpenStore opens (or creates) the history database at path.
func OpenStore(path string) (*Store, error) {
	// Create parent directory if needed
	dbDir := filepath.Dir(path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Insert writes an entry to the database.
func (s *Store) Insert(entry Entry) error {
	_, err := s.db.Exec(`
		INSERT INTO analyses (request_id, timestamp, preview, model, latency_ns, input_tokens, output_tokens)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, entry.RequestID, entry.Timestamp.Unix(), entry.Preview, entry.Model,
		int64(entry.Latency), entry.InputTokens, entry.OutputTokens)
	if err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}
	return nil
}

// Recent returns up to n most recent entries, oldest first.
func (s *Store) Recent(n int) ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT request_id, timestamp, preview, model, latency_ns, input_tokens, output_tokens
		FROM analyses
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts, latency int64
		if err := rows.Scan(&e.RequestID, &ts, &e.Preview, &e.Model,
			&latency, &e.InputTokens, &e.OutputTokens); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		e.Timestamp = time.Unix(ts, 0)
		e.Latency = time.Duration(latency)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Reverse to oldest-first order.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

// Count returns the total number of persisted entries.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM analyses").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Clear deletes all persisted entries and returns how many were removed.
func (s *Store) Clear() (int64, error) {
	res, err := s.db.Exec("DELETE FROM analyses")
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Prune deletes entries older than the cutoff.
func (s *Store) Prune(before time.Time) (int64, error) {
	res, err := s.db.Exec("DELETE FROM analyses WHERE timestamp < ?", before.Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
