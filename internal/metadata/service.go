// Package metadata provides cache-aside orchestration between the movie
// catalog and the upstream metadata provider.
package metadata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/vmunix/cinelog/internal/catalog"
	"github.com/vmunix/cinelog/pkg/omdb"
)

// ErrEmptyTerm is returned when the search term is missing or blank.
var ErrEmptyTerm = errors.New("search term is required")

// ErrProviderUnavailable wraps a failure of the primary provider search call.
// Per-item detail failures are absorbed inside the batch and never carry it.
var ErrProviderUnavailable = errors.New("provider unavailable")

const (
	defaultFreshnessWindow = 24 * time.Hour
	defaultCacheLimit      = 10
	defaultDetailLimit     = 10
)

// Config holds orchestration tuning knobs.
type Config struct {
	FreshnessWindow time.Duration // cached records older than this are stale; default 24h
	CacheLimit      int           // max records served from a cache hit; default 10
	DetailLimit     int           // max provider detail fetches per search; default 10
}

// Service resolves free-text search terms against the catalog first and the
// upstream provider on a miss, persisting every freshly fetched record.
// It holds no per-request state beyond the in-flight search group.
type Service struct {
	store    Store
	provider Provider
	pacer    Pacer
	log      *slog.Logger

	window      time.Duration
	cacheLimit  int
	detailLimit int

	group singleflight.Group
}

// NewService creates a new orchestration service.
func NewService(store Store, provider Provider, pacer Pacer, log *slog.Logger, cfg Config) *Service {
	if log == nil {
		log = slog.Default()
	}
	if cfg.FreshnessWindow <= 0 {
		cfg.FreshnessWindow = defaultFreshnessWindow
	}
	if cfg.CacheLimit <= 0 {
		cfg.CacheLimit = defaultCacheLimit
	}
	if cfg.DetailLimit <= 0 {
		cfg.DetailLimit = defaultDetailLimit
	}
	return &Service{
		store:       store,
		provider:    provider,
		pacer:       pacer,
		log:         log,
		window:      cfg.FreshnessWindow,
		cacheLimit:  cfg.CacheLimit,
		detailLimit: cfg.DetailLimit,
	}
}

// SearchAndCache resolves a search term to a ranked list of movies.
// Concurrent identical terms are collapsed into a single in-flight search;
// every caller receives the shared result.
func (s *Service) SearchAndCache(ctx context.Context, term string) ([]*catalog.Movie, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, ErrEmptyTerm
	}

	key := strings.ToLower(term)
	v, err, shared := s.group.Do(key, func() (any, error) {
		return s.searchAndCache(ctx, term)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.log.Debug("search collapsed into in-flight request", "term", term)
	}
	return v.([]*catalog.Movie), nil
}

func (s *Service) searchAndCache(ctx context.Context, term string) ([]*catalog.Movie, error) {
	cutoff := time.Now().Add(-s.window)

	cached, err := s.store.SearchFresh(ctx, term, cutoff, s.cacheLimit)
	if err != nil {
		return nil, fmt.Errorf("cache lookup: %w", err)
	}
	if len(cached) > 0 {
		rankBySimilarity(cached, term)
		s.log.Debug("cache hit", "term", term, "results", len(cached))
		return cached, nil
	}

	s.log.Debug("cache miss, querying provider", "term", term)

	summaries, err := s.provider.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	if len(summaries) == 0 {
		return []*catalog.Movie{}, nil
	}
	if len(summaries) > s.detailLimit {
		summaries = summaries[:s.detailLimit]
	}

	movies := make([]*catalog.Movie, 0, len(summaries))
	for i, summary := range summaries {
		if i > 0 {
			if err := s.pacer.Pace(ctx); err != nil {
				return nil, err
			}
		}

		detail, err := s.provider.GetByID(ctx, summary.ImdbID)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			// A single item's failure must never abort the batch.
			s.log.Warn("detail fetch failed, skipping",
				"imdb_id", summary.ImdbID, "title", summary.Title, "error", err)
			continue
		}

		m := normalize(detail)
		if err := s.store.Upsert(ctx, m); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.log.Warn("upsert failed, skipping",
				"imdb_id", summary.ImdbID, "error", err)
			continue
		}
		movies = append(movies, m)
	}

	s.log.Info("backfilled from provider", "term", term,
		"summaries", len(summaries), "stored", len(movies))
	return movies, nil
}

// PurgeExpired removes every cached movie older than the freshness window.
// Returns the count removed; zero when nothing is expired.
func (s *Service) PurgeExpired(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-s.window)
	count, err := s.store.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge expired: %w", err)
	}
	if count > 0 {
		s.log.Info("purged expired movies", "count", count)
	}
	return count, nil
}

// normalize maps a provider record into the catalog shape. Unknown provider
// fields become the catalog sentinel; comma-separated multi-valued fields
// become ordered slices.
func normalize(d *omdb.Detail) *catalog.Movie {
	return &catalog.Movie{
		ImdbID:     d.ImdbID,
		Title:      d.Title,
		Year:       d.Year.Or(catalog.Unknown),
		Poster:     d.Poster.Or(catalog.Unknown),
		Rating:     d.ImdbRating.Or(catalog.Unknown),
		ImdbRating: d.ImdbRating.Or(catalog.Unknown),
		Runtime:    d.Runtime.Or(catalog.Unknown),
		Genre:      d.Genre.List(),
		Director:   d.Director.Or(catalog.Unknown),
		Actors:     d.Actors.List(),
		Plot:       d.Plot.Or(catalog.Unknown),
		Language:   d.Language.Or(catalog.Unknown),
		Country:    d.Country.Or(catalog.Unknown),
		Awards:     d.Awards.Or(catalog.Unknown),
		ImdbVotes:  d.ImdbVotes.Or(catalog.Unknown),
	}
}
