package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://www.omdbapi.com"

// ErrNotFound is returned when a movie doesn't exist in OMDb.
var ErrNotFound = errors.New("movie not found")

// Client is an OMDb API client. Authentication is an API key passed in the
// query string of every request.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets a logger for debug output.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log.With("component", "omdb")
	}
}

// New creates a new OMDb client.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) get(ctx context.Context, query url.Values, result any) error {
	query.Set("apikey", c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("OMDb API error: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Search searches for movies by free-text term. A provider-reported
// "no matches" is a legitimate outcome and returns an empty slice, not an
// error; transport failures, non-success statuses, and malformed payloads
// are errors.
func (c *Client) Search(ctx context.Context, term string) ([]SearchResult, error) {
	start := time.Now()

	var sr searchResponse
	if err := c.get(ctx, url.Values{"s": {term}}, &sr); err != nil {
		return nil, fmt.Errorf("search %q: %w", term, err)
	}

	if sr.Response != "True" {
		if c.log != nil {
			c.log.Debug("search returned no matches", "term", term, "reason", sr.Error)
		}
		return []SearchResult{}, nil
	}

	if c.log != nil {
		c.log.Debug("search completed", "term", term, "results", len(sr.Search),
			"duration_ms", time.Since(start).Milliseconds())
	}
	return sr.Search, nil
}

// GetByID fetches the full record for an IMDb ID.
// Returns ErrNotFound when the provider reports no such record.
func (c *Client) GetByID(ctx context.Context, imdbID string) (*Detail, error) {
	var dr detailResponse
	if err := c.get(ctx, url.Values{"i": {imdbID}}, &dr); err != nil {
		return nil, fmt.Errorf("get %s: %w", imdbID, err)
	}

	if dr.Response != "True" {
		return nil, ErrNotFound
	}
	return &dr.Detail, nil
}
