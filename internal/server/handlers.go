// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/paper-analyzer/internal/logging"
	"github.com/pdiddy/paper-analyzer/internal/resolve"
	"github.com/pdiddy/paper-analyzer/internal/store"
	"github.com/pdiddy/paper-analyzer/pkg/types"
)

const timestampLayout = "2006-01-02 15:04:05"

// TextRequest is the body of POST /analyze/text.
type TextRequest struct {
	Text  string `json:"text"`
	Title string `json:"title,omitempty"`
}

// DOIRequest is the body of POST /analyze/doi.
type DOIRequest struct {
	DOI string `json:"doi"`
}

// AnalysisResponse is returned by both analyze endpoints. CoreInfo repeats
// FullAnalysis.Modules for clients that only want the fields.
type AnalysisResponse struct {
	ID                   string            `json:"id,omitempty"`
	PaperType            types.PaperType   `json:"paper_type"`
	PaperTypeDescription string            `json:"paper_type_description"`
	Confidence           float64           `json:"confidence"`
	CoreInfo             map[string]string `json:"core_info"`
	FullAnalysis         *types.Analysis   `json:"full_analysis"`
	GenerationTime       string            `json:"generation_time"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

func writeError(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, errorResponse{
		Error:  http.StatusText(status),
		Detail: detail,
	})
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    "Paper Analyzer",
		"version": s.cfg.Version,
		"docs":    "/paper-types",
		"endpoints": gin.H{
			"analyze_text": "POST /analyze/text - Analyze paper text",
			"analyze_doi":  "POST /analyze/doi - Analyze paper by DOI",
			"analysis":     "GET /analyses/:id - Fetch a stored analysis",
			"health":       "GET /health - Health check",
			"paper_types":  "GET /paper-types - Supported paper types",
			"metrics":      "GET /metrics - Prometheus metrics",
		},
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": s.now().Format(timestampLayout),
	})
}

func (s *Server) handlePaperTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"supported_types": s.extractor.SupportedTypes()})
}

func (s *Server) handleAnalyzeText(c *gin.Context) {
	var req TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if !s.longEnough(req.Text) {
		writeError(c, http.StatusBadRequest, s.tooShortDetail())
		return
	}

	var meta *types.PaperMetadata
	if title := strings.TrimSpace(req.Title); title != "" {
		meta = &types.PaperMetadata{Title: title, Authors: []string{}, Keywords: []string{}}
	}
	s.analyze(c, req.Text, meta, types.SourceText, "")
}

func (s *Server) handleAnalyzeDOI(c *gin.Context) {
	var req DOIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.DOI) == "" {
		writeError(c, http.StatusBadRequest, "DOI cannot be empty")
		return
	}
	if s.resolver == nil {
		writeError(c, http.StatusServiceUnavailable, "DOI resolution is not configured")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.RequestTimeout)
	defer cancel()
	meta, err := s.resolver.Resolve(ctx, req.DOI)
	if err != nil {
		_ = c.Error(err)
		writeError(c, resolveStatus(err), err.Error())
		return
	}

	text := resolve.FullText(meta)
	if !s.longEnough(text) {
		writeError(c, http.StatusNotFound, "Unable to retrieve sufficient paper content for analysis")
		return
	}
	s.analyze(c, text, meta, types.SourceDOI, meta.DOI)
}

// resolveStatus maps resolver errors to HTTP status codes.
func resolveStatus(err error) int {
	switch {
	case errors.Is(err, resolve.ErrInvalidDOI):
		return http.StatusBadRequest
	case errors.Is(err, resolve.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func (s *Server) handleGetAnalysis(c *gin.Context) {
	if s.history == nil {
		writeError(c, http.StatusNotFound, "analysis history is disabled")
		return
	}
	rec, err := s.history.GetAnalysis(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(c, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		_ = c.Error(err)
		writeError(c, http.StatusInternalServerError, "reading analysis history")
		return
	}
	c.JSON(http.StatusOK, rec)
}

// analyze runs the extractor, stores the result when history is enabled
// and writes the response.
func (s *Server) analyze(c *gin.Context, text string, meta *types.PaperMetadata, source types.AnalysisSource, doi string) {
	a, err := s.extractor.Extract(text, meta)
	if err != nil {
		_ = c.Error(err)
		writeError(c, http.StatusInternalServerError, "Error analyzing text: "+err.Error())
		return
	}
	s.metrics.ObserveClassification(a.PaperType, a.Classification.Confidence)

	resp := AnalysisResponse{
		PaperType:            a.PaperType,
		PaperTypeDescription: a.Classification.TypeDescription,
		Confidence:           a.Classification.Confidence,
		CoreInfo:             a.Modules,
		FullAnalysis:         a,
		GenerationTime:       s.now().Format(timestampLayout),
	}

	if s.history != nil {
		rec, err := s.history.SaveAnalysis(c.Request.Context(), source, doi, a)
		if err != nil {
			s.log.Warn("saving analysis failed",
				logging.String("request_id", c.GetString(ctxRequestID)),
				logging.Err(err),
			)
		} else {
			resp.ID = rec.ID
		}
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) longEnough(text string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(text)) >= s.cfg.MinTextLength
}

func (s *Server) tooShortDetail() string {
	return "Text content too short, minimum " + strconv.Itoa(s.cfg.MinTextLength) + " characters required"
}
