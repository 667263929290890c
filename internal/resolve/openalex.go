// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// OpenAlex API JSON structures.
type openAlexWork struct {
	Title                 string               `json:"title"`
	PublicationDate       string               `json:"publication_date"`
	PublicationYear       int                  `json:"publication_year"`
	Authorships           []openAlexAuthorship `json:"authorships"`
	AbstractInvertedIndex map[string][]int     `json:"abstract_inverted_index"`
	PrimaryLocation       *openAlexLocation    `json:"primary_location"`
	Biblio                openAlexBiblio       `json:"biblio"`
	Keywords              []openAlexKeyword    `json:"keywords"`
}

type openAlexAuthorship struct {
	Author struct {
		DisplayName string `json:"display_name"`
	} `json:"author"`
}

type openAlexLocation struct {
	Source *struct {
		DisplayName string `json:"display_name"`
	} `json:"source"`
}

type openAlexBiblio struct {
	Volume    string `json:"volume"`
	Issue     string `json:"issue"`
	FirstPage string `json:"first_page"`
	LastPage  string `json:"last_page"`
}

type openAlexKeyword struct {
	DisplayName string `json:"display_name"`
}

// fetchOpenAlex retrieves a work by DOI from OpenAlex. It is the last
// source tried and the only one besides CrossRef that carries abstracts.
func (r *Resolver) fetchOpenAlex(ctx context.Context, doi string) (*types.PaperMetadata, error) {
	apiURL := openAlexAPIBase + "doi:" + escapeDOI(doi)
	if r.mailto != "" {
		apiURL += "?" + url.Values{"mailto": {r.mailto}}.Encode()
	}

	var work openAlexWork
	if err := r.client.GetJSON(ctx, apiURL, &work); err != nil {
		return nil, fmt.Errorf("OpenAlex API request: %w", mapStatus(err))
	}
	meta := work.metadata(doi)
	meta.Source = SourceOpenAlex
	return meta, nil
}

func (w openAlexWork) metadata(doi string) *types.PaperMetadata {
	meta := &types.PaperMetadata{
		DOI:             doi,
		Title:           strings.TrimSpace(w.Title),
		Authors:         []string{},
		Keywords:        []string{},
		PublicationDate: w.PublicationDate,
		Abstract:        reconstructAbstract(w.AbstractInvertedIndex),
		Volume:          w.Biblio.Volume,
		Issue:           w.Biblio.Issue,
		Pages:           w.Biblio.FirstPage,
		URL:             DOIURL(doi),
	}
	if meta.PublicationDate == "" && w.PublicationYear > 0 {
		meta.PublicationDate = strconv.Itoa(w.PublicationYear)
	}
	if w.Biblio.LastPage != "" && w.Biblio.LastPage != w.Biblio.FirstPage {
		meta.Pages += "-" + w.Biblio.LastPage
	}
	if w.PrimaryLocation != nil && w.PrimaryLocation.Source != nil {
		meta.Journal = w.PrimaryLocation.Source.DisplayName
	}
	for _, a := range w.Authorships {
		if a.Author.DisplayName != "" {
			meta.Authors = append(meta.Authors, a.Author.DisplayName)
		}
	}
	for _, k := range w.Keywords {
		if k.DisplayName != "" {
			meta.Keywords = append(meta.Keywords, k.DisplayName)
		}
	}
	return meta
}

// reconstructAbstract converts OpenAlex's abstract_inverted_index, which
// maps each word to its positions, back to plain text.
func reconstructAbstract(invertedIndex map[string][]int) string {
	if len(invertedIndex) == 0 {
		return ""
	}

	type posWord struct {
		pos  int
		word string
	}
	var pairs []posWord
	for word, positions := range invertedIndex {
		for _, pos := range positions {
			pairs = append(pairs, posWord{pos: pos, word: word})
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].pos < pairs[j].pos
	})

	words := make([]string, len(pairs))
	for i, p := range pairs {
		words[i] = p.word
	}
	return strings.Join(words, " ")
}
