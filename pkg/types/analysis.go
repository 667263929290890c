// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// PaperType is the genre a paper is classified into.
type PaperType string

const (
	ClinicalResearch PaperType = "clinical_research"
	CaseReport       PaperType = "case_report"
	BasicResearch    PaperType = "basic_research"
)

// PaperTypes lists every paper type in canonical order. Classification ties
// are broken by this order.
var PaperTypes = []PaperType{ClinicalResearch, CaseReport, BasicResearch}

// Description returns the human-readable name of the paper type, or
// "Unknown type" for values outside the fixed set.
func (t PaperType) Description() string {
	switch t {
	case ClinicalResearch:
		return "Clinical Research"
	case CaseReport:
		return "Case Report"
	case BasicResearch:
		return "Basic Research"
	default:
		return "Unknown type"
	}
}

// Summary returns a one-line explanation of what the paper type covers.
func (t PaperType) Summary() string {
	switch t {
	case ClinicalResearch:
		return "Clinical trials, cohort studies, and other clinical research"
	case CaseReport:
		return "Case reports and case studies"
	case BasicResearch:
		return "Basic experiments and mechanism studies"
	default:
		return ""
	}
}

// Valid reports whether t is one of the fixed paper types.
func (t PaperType) Valid() bool {
	switch t {
	case ClinicalResearch, CaseReport, BasicResearch:
		return true
	}
	return false
}

// Classification is the detailed outcome of classifying one text.
type Classification struct {
	// Type is the winning paper type.
	Type PaperType `json:"type" yaml:"type"`

	// Confidence is the winner's share of the total score, in [0, 1].
	Confidence float64 `json:"confidence" yaml:"confidence"`

	// Scores holds the raw weighted score of every paper type.
	Scores map[PaperType]float64 `json:"scores" yaml:"scores"`

	// TypeDescription is the human-readable name of Type.
	TypeDescription string `json:"type_description" yaml:"type_description"`
}

// ClassificationSummary is the classification block attached to an analysis.
type ClassificationSummary struct {
	Type            PaperType `json:"type" yaml:"type"`
	TypeDescription string    `json:"type_description" yaml:"type_description"`
	Confidence      float64   `json:"confidence" yaml:"confidence"`
}

// Analysis is the structured result of analyzing one paper.
type Analysis struct {
	// PaperType is the genre whose template produced Modules.
	PaperType PaperType `json:"paper_type" yaml:"paper_type"`

	// Modules maps every field of the genre's template to its extracted
	// text or the field's "not stated" sentinel.
	Modules map[string]string `json:"modules" yaml:"modules"`

	// Metadata is the caller-supplied metadata, or an empty record.
	Metadata PaperMetadata `json:"metadata" yaml:"metadata"`

	Classification ClassificationSummary `json:"classification" yaml:"classification"`
}

// AnalysisSource records how the analyzed text was obtained.
type AnalysisSource string

const (
	SourceText AnalysisSource = "text"
	SourceDOI  AnalysisSource = "doi"
)

// AnalysisRecord is a stored analysis in the history database.
type AnalysisRecord struct {
	ID        string         `json:"id" yaml:"id"`
	CreatedAt time.Time      `json:"created_at" yaml:"created_at"`
	Source    AnalysisSource `json:"source" yaml:"source"`
	DOI       string         `json:"doi,omitempty" yaml:"doi,omitempty"`
	Analysis  Analysis       `json:"analysis" yaml:"analysis"`
}
