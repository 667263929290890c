// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

const defaultTimeout = 10 * time.Second

// StatusError reports a non-200 response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: HTTP %d", e.URL, e.StatusCode)
}

// Client wraps an http.Client with a User-Agent and retry policy.
type Client struct {
	HTTP       *http.Client
	UserAgent  string
	MaxRetries int
}

// NewClient builds a Client from cfg. A zero timeout uses 10 s.
func NewClient(cfg types.HTTPConfig, maxRetries int) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		HTTP:       &http.Client{Timeout: timeout},
		UserAgent:  cfg.UserAgent,
		MaxRetries: maxRetries,
	}
}

// Get issues a GET with retries. The caller closes the response body.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	return DoWithRetry(ctx, c.HTTP, req, c.MaxRetries)
}

// GetJSON fetches url and decodes a 200 response body into out. Any other
// status yields a *StatusError.
func (c *Client) GetJSON(ctx context.Context, url string, out any) error {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return &StatusError{URL: url, StatusCode: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", url, err)
	}
	return nil
}
