// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-analyzer/internal/analyze"
	"github.com/pdiddy/paper-analyzer/internal/secrets"
	"github.com/pdiddy/paper-analyzer/pkg/types"
)

func testViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := loadConfig(testViper(), secrets.Secrets{})

	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Equal(t, 10, cfg.Server.MinTextLength)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 10*time.Second, cfg.Resolver.Timeout)
	assert.Equal(t, 3, cfg.Resolver.MaxRetries)
	assert.Empty(t, cfg.Resolver.Mailto)
	assert.Empty(t, cfg.Store.Path)
	assert.Equal(t, 720*time.Hour, cfg.Store.CacheTTL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadConfig_SecretsFillResolver(t *testing.T) {
	s := secrets.Secrets{
		secrets.CrossRefMailto: "team@example.org",
		secrets.NCBIAPIKey:     "key-from-file",
	}

	cfg := loadConfig(testViper(), s)
	assert.Equal(t, "team@example.org", cfg.Resolver.Mailto)
	assert.Equal(t, "key-from-file", cfg.Resolver.NCBIAPIKey)

	v := testViper()
	v.Set("resolver.mailto", "configured@example.org")
	cfg = loadConfig(v, s)
	assert.Equal(t, "configured@example.org", cfg.Resolver.Mailto)
	assert.Equal(t, "key-from-file", cfg.Resolver.NCBIAPIKey)
}

func TestLoadConfig_FromYAML(t *testing.T) {
	v := testViper()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
server:
  addr: ":9090"
  min_text_length: 20
  request_timeout: 5s
store:
  path: /tmp/history.db
  cache_ttl: 1h
log:
  level: debug
  format: console
`)))

	cfg := loadConfig(v, secrets.Secrets{})
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 20, cfg.Server.MinTextLength)
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "/tmp/history.db", cfg.Store.Path)
	assert.Equal(t, time.Hour, cfg.Store.CacheTTL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestOpenStore(t *testing.T) {
	st, err := openStore(types.StoreConfig{})
	require.NoError(t, err)
	assert.Nil(t, st)

	st, err = openStore(types.StoreConfig{Path: filepath.Join(t.TempDir(), "a.db")})
	require.NoError(t, err)
	require.NotNil(t, st)
	assert.NoError(t, st.Close())
}

func TestCheckFormat(t *testing.T) {
	assert.NoError(t, checkFormat("json", "text", "json", "yaml"))
	assert.Error(t, checkFormat("xml", "text", "json", "yaml"))
}

func TestReadInput(t *testing.T) {
	got, err := readInput(strings.NewReader("from stdin"), nil)
	require.NoError(t, err)
	assert.Equal(t, "from stdin", got)

	got, err = readInput(strings.NewReader("dash"), []string{"-"})
	require.NoError(t, err)
	assert.Equal(t, "dash", got)

	_, err = readInput(nil, []string{filepath.Join(t.TempDir(), "missing.txt")})
	assert.Error(t, err)
}

const caseText = "Case report: 65-year-old male patient presented with chest pain. Diagnosed with atrial fibrillation. Treated with anticoagulation therapy."

func TestWriteAnalysis(t *testing.T) {
	a, err := analyze.New().Extract(caseText, &types.PaperMetadata{Title: "AF case"})
	require.NoError(t, err)

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeAnalysis(&buf, a, "text"))
		out := buf.String()
		assert.Contains(t, out, "Paper type:  Case Report (case_report)")
		assert.Contains(t, out, "Confidence:  0.92")
		assert.Contains(t, out, "Title:       AF case")
		assert.Less(t, strings.Index(out, "Case Summary"), strings.Index(out, "Outcome"))
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeAnalysis(&buf, a, "json"))
		var got types.Analysis
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, a.Modules, got.Modules)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeAnalysis(&buf, a, "yaml"))
		var got types.Analysis
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, types.CaseReport, got.PaperType)
		assert.Equal(t, a.Modules, got.Modules)
	})
}

func TestWriteTypes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeTypes(&buf, analyze.New(), false))
	out := buf.String()
	assert.Contains(t, out, "Clinical Research (clinical_research)")
	assert.Contains(t, out, "scientific_question")

	buf.Reset()
	require.NoError(t, writeTypes(&buf, analyze.New(), true))
	var got struct {
		SupportedTypes map[string]analyze.TypeInfo `json:"supported_types"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Len(t, got.SupportedTypes["clinical_research"].Modules, 8)
	assert.Len(t, got.SupportedTypes["case_report"].Modules, 5)
	assert.Len(t, got.SupportedTypes["basic_research"].Modules, 5)
}

func TestFormatHistory(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, formatHistory(&buf, nil))
	assert.Equal(t, "No analyses found.\n", buf.String())

	buf.Reset()
	records := []types.AnalysisRecord{{
		ID:        "0b7e3c1a-4d5f-4e6a-9b8c-7d6e5f4a3b2c",
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		DOI:       "10.1000/xyz123",
		Analysis:  types.Analysis{PaperType: types.BasicResearch},
	}}
	require.NoError(t, formatHistory(&buf, records))
	assert.Contains(t, buf.String(), "2026-01-02 03:04:05")
	assert.Contains(t, buf.String(), "10.1000/xyz123")
	assert.Contains(t, buf.String(), "1 analyses")
}

func TestPurgeCache(t *testing.T) {
	ctx := context.Background()
	st, err := openStore(types.StoreConfig{
		Path:     filepath.Join(t.TempDir(), "cache.db"),
		CacheTTL: time.Millisecond,
	})
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, st.PutMetadata(ctx, &types.PaperMetadata{DOI: "10.1000/xyz123", Title: "Old entry"}))
	time.Sleep(5 * time.Millisecond)

	var buf bytes.Buffer
	require.NoError(t, purgeCache(ctx, &buf, st))
	assert.Equal(t, "Purged 1 expired cache entries.\n", buf.String())

	buf.Reset()
	require.NoError(t, purgeCache(ctx, &buf, st))
	assert.Equal(t, "Purged 0 expired cache entries.\n", buf.String())
}
