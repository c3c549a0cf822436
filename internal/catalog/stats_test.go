package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats_Empty(t *testing.T) {
	store := NewStore(setupTestDB(t))

	stats, err := store.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalMovies)
	assert.Equal(t, "0.0", stats.AvgRating)
	assert.Zero(t, stats.AvgRuntime)
	assert.Empty(t, stats.GenreDistribution)
	assert.Empty(t, stats.RatingsByYear)
}

func TestStats_Aggregates(t *testing.T) {
	store := NewStore(setupTestDB(t))
	ctx := context.Background()

	a := testMovie("tt0000001", "Alpha")
	a.Year = "1999"
	a.Rating = "8.0"
	a.Runtime = "100 min"
	a.Genre = []string{"Action", "Drama"}
	require.NoError(t, store.Upsert(ctx, a))

	b := testMovie("tt0000002", "Beta")
	b.Year = "1999"
	b.Rating = "6.0"
	b.Runtime = "140 min"
	b.Genre = []string{"Drama"}
	require.NoError(t, store.Upsert(ctx, b))

	// Unknown rating and runtime stay out of the averages
	c := testMovie("tt0000003", "Gamma")
	c.Year = "2004"
	c.Rating = Unknown
	c.Runtime = Unknown
	c.Genre = []string{"Drama"}
	require.NoError(t, store.Upsert(ctx, c))

	stats, err := store.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalMovies)
	assert.Equal(t, "7.0", stats.AvgRating)
	assert.Equal(t, 120, stats.AvgRuntime)

	require.Len(t, stats.GenreDistribution, 2)
	assert.Equal(t, GenreCount{Genre: "Drama", Count: 3}, stats.GenreDistribution[0])
	assert.Equal(t, GenreCount{Genre: "Action", Count: 1}, stats.GenreDistribution[1])

	require.Len(t, stats.RatingsByYear, 2)
	assert.Equal(t, "2004", stats.RatingsByYear[0].Year)
	assert.Zero(t, stats.RatingsByYear[0].AvgRating, "year with only unknown ratings averages to zero")
	assert.Equal(t, 1, stats.RatingsByYear[0].Count)
	assert.Equal(t, "1999", stats.RatingsByYear[1].Year)
	assert.InDelta(t, 7.0, stats.RatingsByYear[1].AvgRating, 0.001)
	assert.Equal(t, 2, stats.RatingsByYear[1].Count)
}
