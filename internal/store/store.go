// Package store reads the crawled page corpus out of PostgreSQL. The crawler
// fills the pages table; the indexer and corpus-analysis tools stream it.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ruseek/ruseek/pkg/postgres"
)

// Page is one crawled document.
type Page struct {
	URL  string
	HTML string
}

// Store streams pages from the corpus database.
type Store struct {
	db     *postgres.Client
	logger *slog.Logger
}

// New wraps a PostgreSQL client.
func New(db *postgres.Client) *Store {
	return &Store{
		db:     db,
		logger: slog.Default().With("component", "store"),
	}
}

// CountPages returns the corpus size.
func (s *Store) CountPages(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.DB.QueryRowContext(ctx, `SELECT count(*) FROM pages`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting pages: %w", err)
	}
	return count, nil
}

// ForEachPage streams pages in insertion order and invokes fn for each one.
// A limit of 0 means the whole corpus. fn returning an error stops the scan
// and propagates the error.
func (s *Store) ForEachPage(ctx context.Context, limit int, fn func(Page) error) error {
	query := `SELECT url, html FROM pages ORDER BY id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("querying pages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p Page
		if err := rows.Scan(&p.URL, &p.HTML); err != nil {
			return fmt.Errorf("scanning page row: %w", err)
		}
		if err := fn(p); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating pages: %w", err)
	}
	return nil
}
