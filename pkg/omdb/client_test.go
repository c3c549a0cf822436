package omdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))
		assert.Equal(t, "the matrix", r.URL.Query().Get("s"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"Search": [
				{"Title": "The Matrix", "Year": "1999", "imdbID": "tt0133093", "Type": "movie", "Poster": "https://example.com/matrix.jpg"},
				{"Title": "The Matrix Reloaded", "Year": "2003", "imdbID": "tt0234215", "Type": "movie", "Poster": "N/A"}
			],
			"totalResults": "2",
			"Response": "True"
		}`))
	}))
	defer server.Close()

	client := New("test-key", WithBaseURL(server.URL))

	results, err := client.Search(context.Background(), "the matrix")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "tt0133093", results[0].ImdbID)
	assert.Equal(t, "The Matrix", results[0].Title)
	assert.Equal(t, "1999", results[0].Year)
}

func TestClient_Search_NoMatches(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Response": "False", "Error": "Movie not found!"}`))
	}))
	defer server.Close()

	client := New("test-key", WithBaseURL(server.URL))

	results, err := client.Search(context.Background(), "zzzzzz")
	require.NoError(t, err, "a provider-reported miss is not an error")
	assert.Empty(t, results)
	assert.NotNil(t, results)
}

func TestClient_Search_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := New("bad-key", WithBaseURL(server.URL))

	_, err := client.Search(context.Background(), "the matrix")
	assert.Error(t, err)
}

func TestClient_Search_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	client := New("test-key", WithBaseURL(server.URL))

	_, err := client.Search(context.Background(), "the matrix")
	assert.Error(t, err)
}

func TestClient_GetByID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tt0133093", r.URL.Query().Get("i"))

		_, _ = w.Write([]byte(`{
			"Title": "The Matrix",
			"Year": "1999",
			"Runtime": "136 min",
			"Genre": "Action, Sci-Fi",
			"Awards": "N/A",
			"imdbRating": "8.7",
			"imdbID": "tt0133093",
			"Response": "True"
		}`))
	}))
	defer server.Close()

	client := New("test-key", WithBaseURL(server.URL))

	detail, err := client.GetByID(context.Background(), "tt0133093")
	require.NoError(t, err)
	assert.Equal(t, "The Matrix", detail.Title)
	assert.Equal(t, "136 min", detail.Runtime.Or(""))
	assert.Equal(t, "unknown", detail.Awards.Or("unknown"))
}

func TestClient_GetByID_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Response": "False", "Error": "Incorrect IMDb ID."}`))
	}))
	defer server.Close()

	client := New("test-key", WithBaseURL(server.URL))

	detail, err := client.GetByID(context.Background(), "tt9999999")
	assert.Nil(t, detail)
	assert.ErrorIs(t, err, ErrNotFound)
}
