// Package api implements the REST API for the movie catalog.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/vmunix/cinelog/internal/catalog"
	"github.com/vmunix/cinelog/internal/metadata"
)

// Orchestrator is the search-and-cache service surface used by the API.
type Orchestrator interface {
	SearchAndCache(ctx context.Context, term string) ([]*catalog.Movie, error)
	PurgeExpired(ctx context.Context) (int64, error)
}

// Config holds API server configuration.
type Config struct {
	UserToken  string
	AdminToken string
}

// Server is the REST API server.
type Server struct {
	catalog      *catalog.Store
	orchestrator Orchestrator
	cfg          Config
}

// New creates a new API server.
func New(store *catalog.Store, orchestrator Orchestrator, cfg Config) *Server {
	return &Server{
		catalog:      store,
		orchestrator: orchestrator,
		cfg:          cfg,
	}
}

// RegisterRoutes registers API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /movies", s.listMovies)
	mux.HandleFunc("GET /movies/{imdbID}", s.getMovie)
	mux.HandleFunc("GET /movies/stats/overview", s.getStats)
	mux.HandleFunc("POST /movies/search", s.requireToken(capabilityUser, s.searchMovies))
	mux.HandleFunc("DELETE /movies/cache/clear", s.requireToken(capabilityAdmin, s.clearCache))
}

// Error response
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

// Filter values the frontend sends for "no filter selected".
var wildcardFilters = map[string]bool{
	"All Genres": true, "All Years": true, "All Ratings": true,
}

// queryFilter extracts an optional filter value, treating the frontend's
// wildcard selections as absent.
func queryFilter(r *http.Request, name string) string {
	val := r.URL.Query().Get(name)
	if wildcardFilters[val] {
		return ""
	}
	return val
}

func (s *Server) listMovies(w http.ResponseWriter, r *http.Request) {
	filter := catalog.Filter{
		Search: r.URL.Query().Get("search"),
		Genre:  queryFilter(r, "genre"),
		Year:   queryFilter(r, "year"),
		Sort:   r.URL.Query().Get("sort"),
		Order:  r.URL.Query().Get("order"),
	}

	if rating := queryFilter(r, "rating"); rating != "" {
		min, err := strconv.ParseFloat(rating, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "VALIDATION", fmt.Sprintf("invalid rating filter: %q", rating))
			return
		}
		filter.MinRating = &min
	}

	movies, err := s.catalog.List(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, moviesToResponse(movies))
}

func (s *Server) getMovie(w http.ResponseWriter, r *http.Request) {
	imdbID := r.PathValue("imdbID")

	m, err := s.catalog.Get(r.Context(), imdbID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Movie not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, movieToResponse(m))
}

func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.catalog.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	resp := statsResponse{
		TotalMovies:       stats.TotalMovies,
		AvgRating:         stats.AvgRating,
		AvgRuntime:        stats.AvgRuntime,
		GenreDistribution: make([]genreCountResponse, len(stats.GenreDistribution)),
		RatingsByYear:     make([]yearRatingResponse, len(stats.RatingsByYear)),
	}
	for i, gc := range stats.GenreDistribution {
		resp.GenreDistribution[i] = genreCountResponse{Genre: gc.Genre, Count: gc.Count}
	}
	for i, yr := range stats.RatingsByYear {
		resp.RatingsByYear[i] = yearRatingResponse{Year: yr.Year, AvgRating: yr.AvgRating, Count: yr.Count}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) searchMovies(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}

	movies, err := s.orchestrator.SearchAndCache(r.Context(), req.SearchTerm)
	if err != nil {
		switch {
		case errors.Is(err, metadata.ErrEmptyTerm):
			writeError(w, http.StatusBadRequest, "VALIDATION", "Search term is required")
		case errors.Is(err, metadata.ErrProviderUnavailable):
			writeError(w, http.StatusBadGateway, "PROVIDER_ERROR", err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, moviesToResponse(movies))
}

func (s *Server) clearCache(w http.ResponseWriter, r *http.Request) {
	count, err := s.orchestrator.PurgeExpired(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, purgeResponse{
		Message:      fmt.Sprintf("Cleared %d expired cache entries", count),
		DeletedCount: count,
	})
}
