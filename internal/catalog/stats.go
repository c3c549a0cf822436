package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strconv"
)

// Stats is a read-only aggregate view over the cached movies.
type Stats struct {
	TotalMovies       int
	AvgRating         string // one-decimal string, "0.0" when no rated movies
	AvgRuntime        int    // rounded minutes
	GenreDistribution []GenreCount
	RatingsByYear     []YearRating
}

// GenreCount is one bucket of the genre histogram.
type GenreCount struct {
	Genre string
	Count int
}

// YearRating is the average rating of all movies from one year.
type YearRating struct {
	Year      string
	AvgRating float64 // 0 when no movie of that year has a known rating
	Count     int
}

// Stats computes the aggregate overview. Fields holding the Unknown sentinel
// are excluded from the averages; runtime values are parsed from their
// "<minutes> min" form.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{AvgRating: "0.0"}

	var avgRating, avgRuntime sql.NullFloat64
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       AVG(CASE WHEN rating != ? THEN CAST(rating AS REAL) END),
		       AVG(CASE WHEN runtime != ? AND runtime != ''
		                THEN CAST(REPLACE(runtime, ' min', '') AS REAL) END)
		FROM movies`, Unknown, Unknown,
	).Scan(&stats.TotalMovies, &avgRating, &avgRuntime)
	if err != nil {
		return nil, fmt.Errorf("movie totals: %w", err)
	}
	if avgRating.Valid {
		stats.AvgRating = strconv.FormatFloat(avgRating.Float64, 'f', 1, 64)
	}
	if avgRuntime.Valid {
		stats.AvgRuntime = int(math.Round(avgRuntime.Float64))
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT value, COUNT(*) AS n
		FROM movies, json_each(movies.genre)
		GROUP BY value
		ORDER BY n DESC, value
		LIMIT 10`)
	if err != nil {
		return nil, fmt.Errorf("genre histogram: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var gc GenreCount
		if err := rows.Scan(&gc.Genre, &gc.Count); err != nil {
			return nil, fmt.Errorf("scan genre bucket: %w", err)
		}
		stats.GenreDistribution = append(stats.GenreDistribution, gc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genre buckets: %w", err)
	}

	yearRows, err := s.db.QueryContext(ctx, `
		SELECT year,
		       AVG(CASE WHEN rating != ? THEN CAST(rating AS REAL) END),
		       COUNT(*)
		FROM movies
		GROUP BY year
		ORDER BY year DESC
		LIMIT 20`, Unknown)
	if err != nil {
		return nil, fmt.Errorf("ratings by year: %w", err)
	}
	defer func() { _ = yearRows.Close() }()
	for yearRows.Next() {
		var yr YearRating
		var avg sql.NullFloat64
		if err := yearRows.Scan(&yr.Year, &avg, &yr.Count); err != nil {
			return nil, fmt.Errorf("scan year bucket: %w", err)
		}
		yr.AvgRating = avg.Float64
		stats.RatingsByYear = append(stats.RatingsByYear, yr)
	}
	if err := yearRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate year buckets: %w", err)
	}

	return stats, nil
}
