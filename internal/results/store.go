// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package results holds the session's table of extracted emails. Rows are
// append-only and live in an in-memory SQLite database that disappears
// with the process; nothing is written to disk.
package results

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/yashowardhanspatil/cognemailAI/pkg/types"
)

// Store is the append-only session results table.
type Store struct {
	db *sql.DB
}

// NewStore opens a private in-memory database and creates the schema.
func NewStore() (*Store, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// Every new connection to :memory: is a fresh database, so pin the pool
	// to one connection.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database; all rows are gone afterwards.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS results (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		entity TEXT NOT NULL,
		extracted_email TEXT NOT NULL,
		recorded_at TEXT NOT NULL
	)`)
	return err
}

// Append records one row.
func (s *Store) Append(ctx context.Context, row types.ResultRow) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO results (entity, extracted_email, recorded_at) VALUES (?, ?, ?)`,
		row.Entity, row.ExtractedEmail, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting result for %q: %w", row.Entity, err)
	}
	return nil
}

// Rows returns all rows in insertion order.
func (s *Store) Rows(ctx context.Context) ([]types.ResultRow, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT entity, extracted_email FROM results ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("querying results: %w", err)
	}
	defer rows.Close()

	var out []types.ResultRow
	for rows.Next() {
		var r types.ResultRow
		if err := rows.Scan(&r.Entity, &r.ExtractedEmail); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Len returns the number of recorded rows.
func (s *Store) Len(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM results`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting results: %w", err)
	}
	return n, nil
}
