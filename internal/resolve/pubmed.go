// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// PubMed E-utilities JSON structures.
type esearchResponse struct {
	Result struct {
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

type esummaryResponse struct {
	Result map[string]json.RawMessage `json:"result"`
}

type pubmedSummary struct {
	Title           string         `json:"title"`
	Authors         []pubmedAuthor `json:"authors"`
	FullJournalName string         `json:"fulljournalname"`
	Source          string         `json:"source"`
	PubDate         string         `json:"pubdate"`
	Volume          string         `json:"volume"`
	Issue           string         `json:"issue"`
	Pages           string         `json:"pages"`
}

type pubmedAuthor struct {
	Name string `json:"name"`
}

// fetchPubMed looks the DOI up in PubMed: esearch for the PMID, then
// esummary for the record. E-utilities summaries carry no abstract.
func (r *Resolver) fetchPubMed(ctx context.Context, doi string) (*types.PaperMetadata, error) {
	params := url.Values{
		"db":      {"pubmed"},
		"term":    {doi + "[doi]"},
		"retmode": {"json"},
		"tool":    {"paper-analyzer"},
	}
	if r.mailto != "" {
		params.Set("email", r.mailto)
	}
	if r.ncbiKey != "" {
		params.Set("api_key", r.ncbiKey)
	}

	var search esearchResponse
	if err := r.client.GetJSON(ctx, pubmedSearchURL+"?"+params.Encode(), &search); err != nil {
		return nil, fmt.Errorf("PubMed search request: %w", mapStatus(err))
	}
	if len(search.Result.IDList) == 0 {
		return nil, fmt.Errorf("PubMed search for %s: %w", doi, ErrNotFound)
	}
	pmid := search.Result.IDList[0]

	params.Del("term")
	params.Set("id", pmid)
	var summary esummaryResponse
	if err := r.client.GetJSON(ctx, pubmedSummaryURL+"?"+params.Encode(), &summary); err != nil {
		return nil, fmt.Errorf("PubMed summary request: %w", mapStatus(err))
	}
	raw, ok := summary.Result[pmid]
	if !ok {
		return nil, fmt.Errorf("PubMed summary for PMID %s: %w", pmid, ErrNotFound)
	}
	var rec pubmedSummary
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("parsing PubMed summary: %w", err)
	}

	meta := rec.metadata(doi)
	meta.Source = SourcePubMed
	return meta, nil
}

func (s pubmedSummary) metadata(doi string) *types.PaperMetadata {
	meta := &types.PaperMetadata{
		DOI:             doi,
		Title:           strings.TrimSpace(s.Title),
		Authors:         []string{},
		Keywords:        []string{},
		Journal:         s.FullJournalName,
		PublicationDate: s.PubDate,
		Volume:          s.Volume,
		Issue:           s.Issue,
		Pages:           s.Pages,
		URL:             DOIURL(doi),
	}
	if meta.Journal == "" {
		meta.Journal = s.Source
	}
	for _, a := range s.Authors {
		if a.Name != "" {
			meta.Authors = append(meta.Authors, a.Name)
		}
	}
	return meta
}
