package metadata

import (
	"context"
	"time"

	"github.com/vmunix/cinelog/internal/catalog"
	"github.com/vmunix/cinelog/pkg/omdb"
)

//go:generate mockgen -source=provider.go -destination=mocks/mock_provider.go -package=mocks

// Provider is the upstream movie metadata source.
type Provider interface {
	// Search returns summaries for a free-text term. A provider-reported
	// "no matches" yields an empty slice and nil error.
	Search(ctx context.Context, term string) ([]omdb.SearchResult, error)

	// GetByID fetches the full record for an IMDb ID.
	GetByID(ctx context.Context, imdbID string) (*omdb.Detail, error)
}

// Store is the catalog surface the orchestrator depends on.
type Store interface {
	SearchFresh(ctx context.Context, term string, cutoff time.Time, limit int) ([]*catalog.Movie, error)
	Upsert(ctx context.Context, m *catalog.Movie) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
