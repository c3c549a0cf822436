package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/vmunix/cinelog/internal/catalog"
	"github.com/vmunix/cinelog/internal/metadata"
	"github.com/vmunix/cinelog/internal/migrations"
)

type stubOrchestrator struct {
	searchFn func(ctx context.Context, term string) ([]*catalog.Movie, error)
	purgeFn  func(ctx context.Context) (int64, error)
}

func (s *stubOrchestrator) SearchAndCache(ctx context.Context, term string) ([]*catalog.Movie, error) {
	return s.searchFn(ctx, term)
}

func (s *stubOrchestrator) PurgeExpired(ctx context.Context) (int64, error) {
	return s.purgeFn(ctx)
}

var testTokens = Config{UserToken: "user-secret", AdminToken: "admin-secret"}

func newTestMux(t *testing.T, orch Orchestrator, cfg Config) (*http.ServeMux, *catalog.Store) {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	// In-memory SQLite is per-connection; a second pooled connection would
	// see an empty database.
	db.SetMaxOpenConns(1)
	_, err = db.Exec(migrations.InitialSQL)
	require.NoError(t, err)

	store := catalog.NewStore(db)
	mux := http.NewServeMux()
	New(store, orch, cfg).RegisterRoutes(mux)
	return mux, store
}

func seedMovie(t *testing.T, store *catalog.Store, id, title, year, rating string, genre []string) {
	t.Helper()
	require.NoError(t, store.Upsert(context.Background(), &catalog.Movie{
		ImdbID: id,
		Title:  title,
		Year:   year,
		Rating: rating,
		Genre:  genre,
		Actors: []string{},
		Plot:   "plot",
	}))
}

func doRequest(mux *http.ServeMux, method, path, token string, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestListMovies_Empty(t *testing.T) {
	mux, _ := newTestMux(t, nil, testTokens)

	w := doRequest(mux, http.MethodGet, "/movies", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var movies []movieResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &movies))
	assert.Empty(t, movies)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()), "empty list encodes as [], not null")
}

func TestListMovies_Filters(t *testing.T) {
	mux, store := newTestMux(t, nil, testTokens)
	seedMovie(t, store, "tt0000001", "The Matrix", "1999", "8.7", []string{"Action", "Sci-Fi"})
	seedMovie(t, store, "tt0000002", "Heat", "1995", "8.3", []string{"Crime"})
	seedMovie(t, store, "tt0000003", "Obscure", "1999", catalog.Unknown, []string{"Drama"})

	w := doRequest(mux, http.MethodGet, "/movies?genre=Action", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var movies []movieResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &movies))
	require.Len(t, movies, 1)
	assert.Equal(t, "tt0000001", movies[0].ImdbID)

	w = doRequest(mux, http.MethodGet, "/movies?rating=8.5", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &movies))
	require.Len(t, movies, 1)
	assert.Equal(t, "The Matrix", movies[0].Title)

	// Frontend wildcard selections mean "no filter".
	w = doRequest(mux, http.MethodGet, "/movies?genre=All+Genres&year=All+Years&rating=All+Ratings", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &movies))
	assert.Len(t, movies, 3)
}

func TestListMovies_InvalidRating(t *testing.T) {
	mux, _ := newTestMux(t, nil, testTokens)

	w := doRequest(mux, http.MethodGet, "/movies?rating=high", "", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION", decodeError(t, w).Code)
}

func TestGetMovie(t *testing.T) {
	mux, store := newTestMux(t, nil, testTokens)
	seedMovie(t, store, "tt0133093", "The Matrix", "1999", "8.7", []string{"Action"})

	w := doRequest(mux, http.MethodGet, "/movies/tt0133093", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var m movieResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	assert.Equal(t, "The Matrix", m.Title)
	assert.Equal(t, []string{"Action"}, m.Genre)
	assert.False(t, m.LastUpdated.IsZero())
}

func TestGetMovie_NotFound(t *testing.T) {
	mux, _ := newTestMux(t, nil, testTokens)

	w := doRequest(mux, http.MethodGet, "/movies/tt9999999", "", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decodeError(t, w).Code)
}

func TestGetStats(t *testing.T) {
	mux, store := newTestMux(t, nil, testTokens)
	seedMovie(t, store, "tt0000001", "A", "1999", "8.0", []string{"Drama"})
	seedMovie(t, store, "tt0000002", "B", "1999", "6.0", []string{"Drama"})

	w := doRequest(mux, http.MethodGet, "/movies/stats/overview", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var stats statsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.TotalMovies)
	assert.Equal(t, "7.0", stats.AvgRating)
	require.Len(t, stats.GenreDistribution, 1)
	assert.Equal(t, 2, stats.GenreDistribution[0].Count)
}

func TestSearch(t *testing.T) {
	orch := &stubOrchestrator{
		searchFn: func(_ context.Context, term string) ([]*catalog.Movie, error) {
			assert.Equal(t, "matrix", term)
			return []*catalog.Movie{{ImdbID: "tt0133093", Title: "The Matrix", Genre: []string{}, Actors: []string{}}}, nil
		},
	}
	mux, _ := newTestMux(t, orch, testTokens)

	w := doRequest(mux, http.MethodPost, "/movies/search", "user-secret", `{"searchTerm":"matrix"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var movies []movieResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &movies))
	require.Len(t, movies, 1)
	assert.Equal(t, "tt0133093", movies[0].ImdbID)
}

func TestSearch_AdminTokenAccepted(t *testing.T) {
	orch := &stubOrchestrator{
		searchFn: func(context.Context, string) ([]*catalog.Movie, error) {
			return []*catalog.Movie{}, nil
		},
	}
	mux, _ := newTestMux(t, orch, testTokens)

	w := doRequest(mux, http.MethodPost, "/movies/search", "admin-secret", `{"searchTerm":"matrix"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSearch_Unauthorized(t *testing.T) {
	mux, _ := newTestMux(t, nil, testTokens)

	for _, token := range []string{"", "wrong-token"} {
		w := doRequest(mux, http.MethodPost, "/movies/search", token, `{"searchTerm":"matrix"}`)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "UNAUTHORIZED", decodeError(t, w).Code)
	}
}

func TestSearch_AuthNotConfigured(t *testing.T) {
	mux, _ := newTestMux(t, nil, Config{})

	w := doRequest(mux, http.MethodPost, "/movies/search", "anything", `{"searchTerm":"matrix"}`)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "SERVICE_UNAVAILABLE", decodeError(t, w).Code)
}

func TestSearch_EmptyTerm(t *testing.T) {
	orch := &stubOrchestrator{
		searchFn: func(context.Context, string) ([]*catalog.Movie, error) {
			return nil, metadata.ErrEmptyTerm
		},
	}
	mux, _ := newTestMux(t, orch, testTokens)

	w := doRequest(mux, http.MethodPost, "/movies/search", "user-secret", `{"searchTerm":""}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION", decodeError(t, w).Code)
}

func TestSearch_ProviderUnavailable(t *testing.T) {
	orch := &stubOrchestrator{
		searchFn: func(context.Context, string) ([]*catalog.Movie, error) {
			return nil, fmt.Errorf("%w: connection refused", metadata.ErrProviderUnavailable)
		},
	}
	mux, _ := newTestMux(t, orch, testTokens)

	w := doRequest(mux, http.MethodPost, "/movies/search", "user-secret", `{"searchTerm":"matrix"}`)
	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "PROVIDER_ERROR", decodeError(t, w).Code)
}

func TestSearch_InternalError(t *testing.T) {
	orch := &stubOrchestrator{
		searchFn: func(context.Context, string) ([]*catalog.Movie, error) {
			return nil, errors.New("disk full")
		},
	}
	mux, _ := newTestMux(t, orch, testTokens)

	w := doRequest(mux, http.MethodPost, "/movies/search", "user-secret", `{"searchTerm":"matrix"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "DB_ERROR", decodeError(t, w).Code)
}

func TestSearch_InvalidJSON(t *testing.T) {
	mux, _ := newTestMux(t, nil, testTokens)

	w := doRequest(mux, http.MethodPost, "/movies/search", "user-secret", `{not json`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_JSON", decodeError(t, w).Code)
}

func TestClearCache(t *testing.T) {
	orch := &stubOrchestrator{
		purgeFn: func(context.Context) (int64, error) { return 3, nil },
	}
	mux, _ := newTestMux(t, orch, testTokens)

	w := doRequest(mux, http.MethodDelete, "/movies/cache/clear", "admin-secret", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp purgeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(3), resp.DeletedCount)
	assert.Equal(t, "Cleared 3 expired cache entries", resp.Message)
}

func TestClearCache_UserTokenRejected(t *testing.T) {
	mux, _ := newTestMux(t, nil, testTokens)

	w := doRequest(mux, http.MethodDelete, "/movies/cache/clear", "user-secret", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", decodeError(t, w).Code)
}
