// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads registry credentials from a directory of plain-text
// files. Each file is one secret: the filename is the key and the trimmed
// contents are the value.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Known secret keys.
const (
	// CrossRefMailto is the contact address sent to CrossRef and NCBI.
	CrossRefMailto = "crossref-mailto"

	// NCBIAPIKey raises the PubMed E-utilities rate limit.
	NCBIAPIKey = "ncbi-api-key"
)

// Secrets maps key names to values.
type Secrets map[string]string

// Get returns the secret for key, or fallback when fallback is non-empty
// or the key is absent. Explicit configuration wins over the file.
func (s Secrets) Get(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	return s[key]
}

// Load reads all files in dir. A missing directory is not an error; Load
// returns an empty set. Unreadable files produce a warning on stderr but do
// not abort.
func Load(dir string) (Secrets, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Secrets{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(Secrets)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[name] = value
		}
	}
	return secrets, nil
}
