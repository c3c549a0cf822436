// Package catalog manages the cached movie records.
package catalog

import (
	"time"
)

// Unknown is the sentinel stored for any provider field that was absent,
// empty, or reported as "N/A". Consumers can rely on every string field
// being present.
const Unknown = "unknown"

// MaxListResults bounds the size of any list query.
const MaxListResults = 50

// Movie is a cached movie record keyed by IMDb ID.
type Movie struct {
	ImdbID      string
	Title       string
	Year        string
	Poster      string
	Rating      string
	ImdbRating  string
	Runtime     string
	Genre       []string
	Director    string
	Actors      []string
	Plot        string
	Language    string
	Country     string
	Awards      string
	ImdbVotes   string
	LastUpdated time.Time
}
