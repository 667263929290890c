// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists resolved DOI metadata and analysis history in a
// SQLite database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// ErrNotFound is returned when an analysis ID is unknown.
var ErrNotFound = errors.New("analysis not found")

const defaultCacheTTL = 30 * 24 * time.Hour

// Store manages the SQLite database. It is safe for concurrent use.
type Store struct {
	db       *sql.DB
	cacheTTL time.Duration
	now      func() time.Time
}

// Open opens or creates the database at cfg.Path and creates the schema if
// it does not exist.
func Open(cfg types.StoreConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, errors.New("store path is empty")
	}
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	s := &Store{db: db, cacheTTL: ttl, now: time.Now}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS metadata_cache (
			doi TEXT PRIMARY KEY,
			source TEXT,
			record TEXT NOT NULL,
			fetched_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS analyses (
			id TEXT PRIMARY KEY,
			created_at INTEGER NOT NULL,
			source TEXT NOT NULL,
			doi TEXT,
			paper_type TEXT NOT NULL,
			confidence REAL NOT NULL,
			record TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_paper_type ON analyses(paper_type)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// GetMetadata returns cached metadata for doi. Entries older than the cache
// TTL are reported as misses.
func (s *Store) GetMetadata(ctx context.Context, doi string) (*types.PaperMetadata, bool, error) {
	var record string
	var fetchedAt int64
	err := s.db.QueryRowContext(ctx,
		`SELECT record, fetched_at FROM metadata_cache WHERE doi = ?`, doi,
	).Scan(&record, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("querying metadata cache: %w", err)
	}
	if s.now().Sub(time.Unix(0, fetchedAt)) > s.cacheTTL {
		return nil, false, nil
	}

	var meta types.PaperMetadata
	if err := json.Unmarshal([]byte(record), &meta); err != nil {
		return nil, false, fmt.Errorf("decoding cached metadata for %s: %w", doi, err)
	}
	return &meta, true, nil
}

// PutMetadata inserts or replaces the cached metadata for meta.DOI.
func (s *Store) PutMetadata(ctx context.Context, meta *types.PaperMetadata) error {
	if meta == nil || meta.DOI == "" {
		return errors.New("metadata has no DOI")
	}
	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO metadata_cache (doi, source, record, fetched_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(doi) DO UPDATE SET
			source=excluded.source, record=excluded.record, fetched_at=excluded.fetched_at`,
		meta.DOI, meta.Source, string(data), s.now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("upserting metadata %s: %w", meta.DOI, err)
	}
	return nil
}

// PurgeMetadata deletes cache entries older than the TTL and returns how
// many were removed.
func (s *Store) PurgeMetadata(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.cacheTTL).UnixNano()
	res, err := s.db.ExecContext(ctx, `DELETE FROM metadata_cache WHERE fetched_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purging metadata cache: %w", err)
	}
	return res.RowsAffected()
}
