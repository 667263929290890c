// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for paper-analyzer: paper
// metadata, paper types, classification and analysis results, and the
// configuration records consumed by the CLI and HTTP server.
package types

// PaperMetadata holds bibliographic metadata resolved from a DOI. The
// analyzer passes it through unmodified into an analysis result.
type PaperMetadata struct {
	// DOI is the normalized DOI (e.g. "10.1000/xyz123").
	DOI string `json:"doi" yaml:"doi"`

	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Journal is the container title (journal or proceedings name).
	Journal string `json:"journal" yaml:"journal"`

	// PublicationDate is the print date when known, otherwise the online
	// date, formatted as the dash-joined date parts (e.g. "2023-1-1").
	PublicationDate string `json:"publication_date" yaml:"publication_date"`

	// Abstract is the abstract with markup tags removed.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Keywords are the subject terms reported by the registry.
	Keywords []string `json:"keywords" yaml:"keywords"`

	Volume string `json:"volume" yaml:"volume"`
	Issue  string `json:"issue" yaml:"issue"`
	Pages  string `json:"pages" yaml:"pages"`

	// URL is the doi.org resolver link for the paper.
	URL string `json:"url" yaml:"url"`

	// Source identifies which registry provided the record ("crossref", "pubmed").
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
}

// IsEmpty reports whether m carries no bibliographic content.
func (m *PaperMetadata) IsEmpty() bool {
	if m == nil {
		return true
	}
	return m.DOI == "" && m.Title == "" && m.Abstract == "" && len(m.Authors) == 0
}
