// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"net/url"
	"regexp"
	"strings"
)

// doiPattern matches a DOI anywhere in a string: "10.1000/xyz123".
var doiPattern = regexp.MustCompile(`10\.\d+/\S+`)

// doiTrailing is punctuation that commonly follows a DOI in prose.
const doiTrailing = `.,;:)]}>"'`

// ExtractDOI finds the DOI in a bare DOI, a doi.org URL or free text such
// as "doi: 10.1000/xyz123". It reports false when no DOI is present.
func ExtractDOI(input string) (string, bool) {
	input = strings.TrimSpace(input)
	if u, err := url.Parse(input); err == nil && strings.HasSuffix(u.Host, "doi.org") {
		if p, err := url.PathUnescape(u.Path); err == nil {
			input = p
		}
	}

	m := doiPattern.FindString(input)
	if m == "" {
		return "", false
	}
	m = strings.TrimRight(m, doiTrailing)
	if !strings.Contains(m, "/") || strings.HasSuffix(m, "/") {
		return "", false
	}
	return m, true
}

// DOIURL returns the doi.org resolver link for doi.
func DOIURL(doi string) string {
	return doiBase + escapeDOI(doi)
}

// escapeDOI path-escapes doi but keeps its slashes.
func escapeDOI(doi string) string {
	return strings.ReplaceAll(url.PathEscape(doi), "%2F", "/")
}
