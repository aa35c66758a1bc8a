// Package fpl is a minimal client for the public Fantasy Premier League
// statistics API.
package fpl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"fpl-transfer-lab/internal/domain"
)

// Default configuration values.
const (
	DefaultBaseURL = "https://fantasy.premierleague.com/api"
	DefaultTimeout = 30 * time.Second
)

// Client fetches player statistics over HTTPS. A fetch is a single
// attempt: collection runs abort on the first error rather than retry,
// leaving the log untouched.
type Client struct {
	baseURL string
	client  *http.Client
}

// ClientOption configures Client.
type ClientOption func(*Client)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.client = client
	}
}

// NewClient creates a new FPL API client. An empty baseURL selects the
// public endpoint.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Bootstrap fetches the full player list from the bootstrap-static
// endpoint and converts it to snapshot rows. Capture timestamps are left
// zero; the collector stamps them at write time.
func (c *Client) Bootstrap(ctx context.Context) ([]*domain.Snapshot, error) {
	url := c.baseURL + "/bootstrap-static/"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build bootstrap request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch bootstrap: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain a little of the body for the diagnostic
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch bootstrap: unexpected status %d: %s", resp.StatusCode, body)
	}

	var payload bootstrapResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode bootstrap response: %w", err)
	}

	rows := make([]*domain.Snapshot, 0, len(payload.Elements))
	for _, el := range payload.Elements {
		row, err := el.toSnapshot()
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", el.ID, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
