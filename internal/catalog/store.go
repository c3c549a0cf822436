package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Store provides access to cached movie records.
type Store struct {
	db *sql.DB
}

// NewStore creates a new catalog store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const movieColumns = `imdb_id, title, year, poster, rating, imdb_rating, runtime,
	genre, director, actors, plot, language, country, awards, imdb_votes, last_updated`

// mapSQLiteError converts driver errors to catalog error types.
func mapSQLiteError(err error) error {
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMovie(s scanner) (*Movie, error) {
	m := &Movie{}
	var genre, actors string
	err := s.Scan(&m.ImdbID, &m.Title, &m.Year, &m.Poster, &m.Rating, &m.ImdbRating,
		&m.Runtime, &genre, &m.Director, &actors, &m.Plot, &m.Language, &m.Country,
		&m.Awards, &m.ImdbVotes, &m.LastUpdated)
	if err != nil {
		return nil, mapSQLiteError(err)
	}
	if err := json.Unmarshal([]byte(genre), &m.Genre); err != nil {
		return nil, fmt.Errorf("decode genre: %w", err)
	}
	if err := json.Unmarshal([]byte(actors), &m.Actors); err != nil {
		return nil, fmt.Errorf("decode actors: %w", err)
	}
	return m, nil
}

// encodeList marshals a string list for storage, never returning null.
func encodeList(values []string) string {
	if values == nil {
		values = []string{}
	}
	data, _ := json.Marshal(values)
	return string(data)
}

// Get retrieves a movie by IMDb ID.
// Returns ErrNotFound if the movie does not exist.
func (s *Store) Get(ctx context.Context, imdbID string) (*Movie, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+movieColumns+" FROM movies WHERE imdb_id = ?", imdbID)
	m, err := scanMovie(row)
	if err != nil {
		return nil, fmt.Errorf("get movie %s: %w", imdbID, err)
	}
	return m, nil
}

// Upsert inserts the movie or replaces every field of the existing record
// with the same IMDb ID. LastUpdated is stamped to the current time as part
// of the write and set on the struct.
func (s *Store) Upsert(ctx context.Context, m *Movie) error {
	now := time.Now()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO movies (`+movieColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(imdb_id) DO UPDATE SET
			title = excluded.title,
			year = excluded.year,
			poster = excluded.poster,
			rating = excluded.rating,
			imdb_rating = excluded.imdb_rating,
			runtime = excluded.runtime,
			genre = excluded.genre,
			director = excluded.director,
			actors = excluded.actors,
			plot = excluded.plot,
			language = excluded.language,
			country = excluded.country,
			awards = excluded.awards,
			imdb_votes = excluded.imdb_votes,
			last_updated = excluded.last_updated`,
		m.ImdbID, m.Title, m.Year, m.Poster, m.Rating, m.ImdbRating, m.Runtime,
		encodeList(m.Genre), m.Director, encodeList(m.Actors), m.Plot, m.Language,
		m.Country, m.Awards, m.ImdbVotes, now,
	)
	if err != nil {
		return fmt.Errorf("upsert movie %s: %w", m.ImdbID, err)
	}
	m.LastUpdated = now
	return nil
}

// List returns movies matching the filter, capped at MaxListResults.
func (s *Store) List(ctx context.Context, f Filter) ([]*Movie, error) {
	var conditions []string
	var args []any

	if f.Search != "" {
		match := ftsQuery(f.Search)
		if match == "" {
			// Whitespace-only input has no indexable tokens and an empty
			// MATCH expression is an FTS5 syntax error.
			return []*Movie{}, nil
		}
		conditions = append(conditions,
			"id IN (SELECT rowid FROM movies_fts WHERE movies_fts MATCH ?)")
		args = append(args, match)
	}
	if f.Genre != "" {
		conditions = append(conditions,
			"EXISTS (SELECT 1 FROM json_each(movies.genre) WHERE json_each.value = ?)")
		args = append(args, f.Genre)
	}
	if f.Year != "" {
		conditions = append(conditions, "year = ?")
		args = append(args, f.Year)
	}
	if f.MinRating != nil {
		conditions = append(conditions, "rating != ? AND CAST(rating AS REAL) >= ?")
		args = append(args, Unknown, *f.MinRating)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	sortExpr, ok := sortColumns[f.Sort]
	if !ok {
		sortExpr = sortColumns["rating"]
	}
	direction := "DESC"
	if f.Order == "asc" {
		direction = "ASC"
	}

	limit := f.Limit
	if limit <= 0 || limit > MaxListResults {
		limit = MaxListResults
	}

	query := fmt.Sprintf("SELECT %s FROM movies %s ORDER BY %s %s, imdb_id LIMIT %d",
		movieColumns, whereClause, sortExpr, direction, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movies: %w", err)
	}
	return results, nil
}

// SearchFresh returns movies matching the free-text term whose last_updated
// is at or after cutoff. This is the cache-hit query: the full-text index
// doubles as the cache index.
func (s *Store) SearchFresh(ctx context.Context, term string, cutoff time.Time, limit int) ([]*Movie, error) {
	if limit <= 0 || limit > MaxListResults {
		limit = MaxListResults
	}
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s FROM movies
		WHERE id IN (SELECT rowid FROM movies_fts WHERE movies_fts MATCH ?)
		  AND last_updated >= ?
		ORDER BY last_updated DESC, imdb_id
		LIMIT %d`, movieColumns, limit),
		ftsQuery(term), cutoff,
	)
	if err != nil {
		return nil, fmt.Errorf("search fresh: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movies: %w", err)
	}
	return results, nil
}

// DeleteOlderThan removes movies whose last_updated is before cutoff.
// Returns the number of records removed. Idempotent.
func (s *Store) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM movies WHERE last_updated < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete expired movies: %w", err)
	}
	return result.RowsAffected()
}

// DeleteAll removes every cached movie.
func (s *Store) DeleteAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM movies"); err != nil {
		return fmt.Errorf("delete all movies: %w", err)
	}
	return nil
}

// ftsQuery builds an FTS5 MATCH expression from free text. Each token is
// quoted so user punctuation can't break the query syntax; tokens are OR'd
// so any matching word qualifies.
func ftsQuery(term string) string {
	fields := strings.Fields(term)
	quoted := make([]string, 0, len(fields))
	for _, f := range fields {
		quoted = append(quoted, `"`+strings.ReplaceAll(f, `"`, `""`)+`"`)
	}
	return strings.Join(quoted, " OR ")
}
