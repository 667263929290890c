// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

const defaultListLimit = 50

// ListOptions filters ListAnalyses.
type ListOptions struct {
	// Limit caps the number of records; 0 uses 50, negative means no limit.
	Limit int

	// PaperType, when set, keeps only analyses of that type.
	PaperType types.PaperType
}

// SaveAnalysis records an analysis and returns the stored record with its
// new ID.
func (s *Store) SaveAnalysis(ctx context.Context, source types.AnalysisSource, doi string, a *types.Analysis) (*types.AnalysisRecord, error) {
	rec := &types.AnalysisRecord{
		ID:        uuid.NewString(),
		CreatedAt: s.now().UTC(),
		Source:    source,
		DOI:       doi,
		Analysis:  *a,
	}
	data, err := json.Marshal(rec.Analysis)
	if err != nil {
		return nil, fmt.Errorf("encoding analysis: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO analyses (id, created_at, source, doi, paper_type, confidence, record)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.CreatedAt.UnixNano(), string(source), doi,
		string(a.PaperType), a.Classification.Confidence, string(data),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting analysis: %w", err)
	}
	return rec, nil
}

// GetAnalysis returns the analysis stored under id, or ErrNotFound.
func (s *Store) GetAnalysis(ctx context.Context, id string) (*types.AnalysisRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, source, doi, record FROM analyses WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ListAnalyses returns stored analyses, newest first.
func (s *Store) ListAnalyses(ctx context.Context, opts ListOptions) ([]types.AnalysisRecord, error) {
	var where []string
	var args []any
	if opts.PaperType != "" {
		where = append(where, "paper_type = ?")
		args = append(args, string(opts.PaperType))
	}

	query := `SELECT id, created_at, source, doi, record FROM analyses`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, rowid DESC"

	limit := opts.Limit
	if limit == 0 {
		limit = defaultListLimit
	}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying analyses: %w", err)
	}
	defer rows.Close()

	var out []types.AnalysisRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (*types.AnalysisRecord, error) {
	var (
		rec       types.AnalysisRecord
		createdAt int64
		source    string
		doi       sql.NullString
		data      string
	)
	if err := sc.Scan(&rec.ID, &createdAt, &source, &doi, &data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning analysis: %w", err)
	}
	rec.CreatedAt = time.Unix(0, createdAt).UTC()
	rec.Source = types.AnalysisSource(source)
	rec.DOI = doi.String
	if err := json.Unmarshal([]byte(data), &rec.Analysis); err != nil {
		return nil, fmt.Errorf("decoding analysis %s: %w", rec.ID, err)
	}
	return &rec, nil
}

// ExportYAML writes the analyses selected by opts to w as a YAML list.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer, opts ListOptions) error {
	records, err := s.ListAnalyses(ctx, opts)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}
	if records == nil {
		records = []types.AnalysisRecord{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

// ExportJSON writes the analyses selected by opts to w as an indented JSON
// array.
func (s *Store) ExportJSON(ctx context.Context, w io.Writer, opts ListOptions) error {
	records, err := s.ListAnalyses(ctx, opts)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}
	if records == nil {
		records = []types.AnalysisRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return nil
}
