// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// --- test helpers ---

var baseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// testStore opens a store in a temp dir with a controllable clock.
func testStore(t *testing.T) (*Store, *time.Time) {
	t.Helper()
	s, err := Open(types.StoreConfig{
		Path:     filepath.Join(t.TempDir(), "data", "paper-analyzer.db"),
		CacheTTL: 24 * time.Hour,
	})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	now := baseTime
	s.now = func() time.Time { return now }
	return s, &now
}

func sampleMetadata() *types.PaperMetadata {
	return &types.PaperMetadata{
		DOI:      "10.1000/xyz123",
		Title:    "Anticoagulation in Atrial Fibrillation",
		Authors:  []string{"Jane Roe"},
		Keywords: []string{},
		URL:      "https://doi.org/10.1000/xyz123",
		Source:   "crossref",
	}
}

func sampleAnalysis(pt types.PaperType, confidence float64) *types.Analysis {
	return &types.Analysis{
		PaperType: pt,
		Modules:   map[string]string{"diagnosis": "atrial fibrillation"},
		Metadata:  types.PaperMetadata{Title: "A case"},
		Classification: types.ClassificationSummary{
			Type:            pt,
			TypeDescription: pt.Description(),
			Confidence:      confidence,
		},
	}
}

// --- schema tests ---

func TestOpenCreatesSchema(t *testing.T) {
	s, _ := testStore(t)

	for _, table := range []string{"metadata_cache", "analyses"} {
		var count int
		err := s.db.QueryRow(
			`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "table %s", table)
	}
}

func TestOpenCreatesDBFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.db")
	s, err := Open(types.StoreConfig{Path: path})
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err)
	assert.Equal(t, defaultCacheTTL, s.cacheTTL)
}

func TestOpenEmptyPath(t *testing.T) {
	_, err := Open(types.StoreConfig{})
	assert.Error(t, err)
}

// --- metadata cache tests ---

func TestMetadataCache(t *testing.T) {
	s, now := testStore(t)
	ctx := context.Background()

	_, hit, err := s.GetMetadata(ctx, "10.1000/xyz123")
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, s.PutMetadata(ctx, sampleMetadata()))

	got, hit, err := s.GetMetadata(ctx, "10.1000/xyz123")
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, sampleMetadata(), got)

	// Upsert replaces the record.
	updated := sampleMetadata()
	updated.Title = "Revised Title"
	require.NoError(t, s.PutMetadata(ctx, updated))
	got, _, err = s.GetMetadata(ctx, "10.1000/xyz123")
	require.NoError(t, err)
	assert.Equal(t, "Revised Title", got.Title)

	// Past the TTL the entry is a miss.
	*now = now.Add(25 * time.Hour)
	_, hit, err = s.GetMetadata(ctx, "10.1000/xyz123")
	require.NoError(t, err)
	assert.False(t, hit)

	n, err := s.PurgeMetadata(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestPutMetadataRequiresDOI(t *testing.T) {
	s, _ := testStore(t)
	assert.Error(t, s.PutMetadata(context.Background(), &types.PaperMetadata{Title: "no doi"}))
	assert.Error(t, s.PutMetadata(context.Background(), nil))
}

// --- history tests ---

func TestSaveAndGetAnalysis(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()

	rec, err := s.SaveAnalysis(ctx, types.SourceDOI, "10.1000/xyz123", sampleAnalysis(types.CaseReport, 0.88))
	require.NoError(t, err)
	assert.Len(t, rec.ID, 36)
	assert.Equal(t, baseTime, rec.CreatedAt)

	got, err := s.GetAnalysis(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestGetAnalysisNotFound(t *testing.T) {
	s, _ := testStore(t)
	_, err := s.GetAnalysis(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestListAnalyses(t *testing.T) {
	s, now := testStore(t)
	ctx := context.Background()

	var ids []string
	for i, pt := range []types.PaperType{types.ClinicalResearch, types.CaseReport, types.ClinicalResearch} {
		*now = baseTime.Add(time.Duration(i) * time.Minute)
		rec, err := s.SaveAnalysis(ctx, types.SourceText, "", sampleAnalysis(pt, 0.7))
		require.NoError(t, err)
		ids = append(ids, rec.ID)
	}

	tests := []struct {
		name    string
		opts    ListOptions
		wantIDs []string
	}{
		{"all newest first", ListOptions{}, []string{ids[2], ids[1], ids[0]}},
		{"limit", ListOptions{Limit: 2}, []string{ids[2], ids[1]}},
		{"no limit", ListOptions{Limit: -1}, []string{ids[2], ids[1], ids[0]}},
		{"by type", ListOptions{PaperType: types.ClinicalResearch}, []string{ids[2], ids[0]}},
		{"type with no rows", ListOptions{PaperType: types.BasicResearch}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := s.ListAnalyses(ctx, tt.opts)
			require.NoError(t, err)
			var got []string
			for _, r := range recs {
				got = append(got, r.ID)
			}
			assert.Equal(t, tt.wantIDs, got)
		})
	}
}

func TestExport(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()

	rec, err := s.SaveAnalysis(ctx, types.SourceText, "", sampleAnalysis(types.CaseReport, 0.9))
	require.NoError(t, err)

	var yamlBuf bytes.Buffer
	require.NoError(t, s.ExportYAML(ctx, &yamlBuf, ListOptions{}))
	var fromYAML []types.AnalysisRecord
	require.NoError(t, yaml.Unmarshal(yamlBuf.Bytes(), &fromYAML))
	require.Len(t, fromYAML, 1)
	assert.Equal(t, rec.ID, fromYAML[0].ID)
	assert.Equal(t, types.CaseReport, fromYAML[0].Analysis.PaperType)
	assert.Equal(t, "atrial fibrillation", fromYAML[0].Analysis.Modules["diagnosis"])

	var jsonBuf bytes.Buffer
	require.NoError(t, s.ExportJSON(ctx, &jsonBuf, ListOptions{}))
	var fromJSON []types.AnalysisRecord
	require.NoError(t, json.Unmarshal(jsonBuf.Bytes(), &fromJSON))
	require.Len(t, fromJSON, 1)
	assert.Equal(t, rec.ID, fromJSON[0].ID)
}

func TestExportEmpty(t *testing.T) {
	s, _ := testStore(t)

	var buf bytes.Buffer
	require.NoError(t, s.ExportJSON(context.Background(), &buf, ListOptions{}))
	assert.Equal(t, "[]\n", buf.String())
}
