package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Movie mirrors the server's movie response.
type Movie struct {
	ImdbID      string    `json:"imdbID"`
	Title       string    `json:"title"`
	Year        string    `json:"year"`
	Rating      string    `json:"rating"`
	Runtime     string    `json:"runtime"`
	Genre       []string  `json:"genre"`
	Director    string    `json:"director"`
	Actors      []string  `json:"actors"`
	Plot        string    `json:"plot"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// Stats mirrors the server's stats overview response.
type Stats struct {
	TotalMovies       int    `json:"totalMovies"`
	AvgRating         string `json:"avgRating"`
	AvgRuntime        int    `json:"avgRuntime"`
	GenreDistribution []struct {
		Genre string `json:"genre"`
		Count int    `json:"count"`
	} `json:"genreDistribution"`
	RatingsByYear []struct {
		Year      string  `json:"year"`
		AvgRating float64 `json:"avgRating"`
		Count     int     `json:"count"`
	} `json:"ratingsByYear"`
}

// PurgeResult mirrors the server's cache-clear response.
type PurgeResult struct {
	Message      string `json:"message"`
	DeletedCount int64  `json:"deletedCount"`
}

// Client wraps HTTP calls to the cinelog server.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a new cinelog API client.
func NewClient(serverURL, token string) *Client {
	return &Client{
		baseURL: serverURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) do(method, path string, body any, result any) error {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal error: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

// Movies lists cached movies with optional filters.
func (c *Client) Movies(query url.Values) ([]Movie, error) {
	path := "/movies"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	var movies []Movie
	if err := c.do(http.MethodGet, path, nil, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// Movie fetches a single cached movie by IMDb ID.
func (c *Client) Movie(imdbID string) (*Movie, error) {
	var m Movie
	if err := c.do(http.MethodGet, "/movies/"+url.PathEscape(imdbID), nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Search triggers a provider-backed search (authenticated).
func (c *Client) Search(term string) ([]Movie, error) {
	var movies []Movie
	body := map[string]string{"searchTerm": term}
	if err := c.do(http.MethodPost, "/movies/search", body, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// Stats fetches the aggregate overview.
func (c *Client) Stats() (*Stats, error) {
	var s Stats
	if err := c.do(http.MethodGet, "/movies/stats/overview", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Purge clears expired cache entries (admin).
func (c *Client) Purge() (*PurgeResult, error) {
	var p PurgeResult
	if err := c.do(http.MethodDelete, "/movies/cache/clear", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
