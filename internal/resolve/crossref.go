// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// CrossRef API JSON structures.
type crossrefResponse struct {
	Message crossrefWork `json:"message"`
}

type crossrefWork struct {
	Title           []string         `json:"title"`
	Author          []crossrefAuthor `json:"author"`
	ContainerTitle  []string         `json:"container-title"`
	PublishedPrint  *crossrefDate    `json:"published-print"`
	PublishedOnline *crossrefDate    `json:"published-online"`
	Abstract        string           `json:"abstract"`
	Subject         []string         `json:"subject"`
	Volume          string           `json:"volume"`
	Issue           string           `json:"issue"`
	Page            string           `json:"page"`
}

type crossrefAuthor struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

type crossrefDate struct {
	DateParts [][]int `json:"date-parts"`
}

// markupTag matches JATS/HTML tags in CrossRef abstracts.
var markupTag = regexp.MustCompile(`<[^>]+>`)

// fetchCrossRef retrieves a work record from the CrossRef API.
func (r *Resolver) fetchCrossRef(ctx context.Context, doi string) (*types.PaperMetadata, error) {
	apiURL := crossrefAPIBase + escapeDOI(doi)
	if r.mailto != "" {
		apiURL += "?" + url.Values{"mailto": {r.mailto}}.Encode()
	}

	var cr crossrefResponse
	if err := r.client.GetJSON(ctx, apiURL, &cr); err != nil {
		return nil, fmt.Errorf("CrossRef API request: %w", mapStatus(err))
	}
	meta := cr.Message.metadata(doi)
	meta.Source = SourceCrossRef
	return meta, nil
}

// metadata normalizes a CrossRef work into PaperMetadata.
func (w crossrefWork) metadata(doi string) *types.PaperMetadata {
	meta := &types.PaperMetadata{
		DOI:      doi,
		Authors:  []string{},
		Keywords: []string{},
		Volume:   w.Volume,
		Issue:    w.Issue,
		Pages:    w.Page,
		URL:      DOIURL(doi),
	}
	if len(w.Title) > 0 {
		meta.Title = strings.TrimSpace(w.Title[0])
	}
	for _, a := range w.Author {
		if name := strings.TrimSpace(a.Given + " " + a.Family); name != "" {
			meta.Authors = append(meta.Authors, name)
		}
	}
	if len(w.ContainerTitle) > 0 {
		meta.Journal = w.ContainerTitle[0]
	}
	switch {
	case w.PublishedPrint != nil:
		meta.PublicationDate = w.PublishedPrint.String()
	case w.PublishedOnline != nil:
		meta.PublicationDate = w.PublishedOnline.String()
	}
	meta.Abstract = stripMarkup(w.Abstract)
	if w.Subject != nil {
		meta.Keywords = w.Subject
	}
	return meta
}

// String joins the first date-parts entry with dashes: "2023-1-1".
// Zero parts, which CrossRef sends as null, are dropped.
func (d *crossrefDate) String() string {
	if d == nil || len(d.DateParts) == 0 {
		return ""
	}
	parts := make([]string, 0, len(d.DateParts[0]))
	for _, p := range d.DateParts[0] {
		if p == 0 {
			break
		}
		parts = append(parts, strconv.Itoa(p))
	}
	return strings.Join(parts, "-")
}

func stripMarkup(s string) string {
	return strings.TrimSpace(html.UnescapeString(markupTag.ReplaceAllString(s, "")))
}
