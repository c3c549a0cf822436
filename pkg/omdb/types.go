// Package omdb provides a client for the OMDb movie metadata API.
package omdb

import (
	"encoding/json"
	"strings"
)

// Field is a tagged-optional OMDb string field. The API marks missing values
// with its "N/A" placeholder; both that and the empty string decode as
// unknown, so callers never see the placeholder itself.
type Field struct {
	value string
	known bool
}

// Known creates a field holding a value.
func Known(v string) Field {
	return Field{value: v, known: true}
}

// Value returns the field value and whether it is known.
func (f Field) Value() (string, bool) {
	return f.value, f.known
}

// Or returns the field value, or fallback if the value is unknown.
func (f Field) Or(fallback string) string {
	if !f.known {
		return fallback
	}
	return f.value
}

// List splits a comma-separated multi-valued field (genre, actors) into an
// ordered slice. Unknown fields yield an empty slice.
func (f Field) List() []string {
	if !f.known {
		return []string{}
	}
	return strings.Split(f.value, ", ")
}

// UnmarshalJSON decodes a field, treating "N/A" and "" as unknown.
func (f *Field) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" || s == "N/A" {
		*f = Field{}
		return nil
	}
	*f = Field{value: s, known: true}
	return nil
}

// SearchResult is one entry from the search-by-term endpoint.
type SearchResult struct {
	ImdbID string `json:"imdbID"`
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

// Detail is the full record from the fetch-by-id endpoint.
type Detail struct {
	ImdbID     string `json:"imdbID"`
	Title      string `json:"Title"`
	Year       Field  `json:"Year"`
	Poster     Field  `json:"Poster"`
	Runtime    Field  `json:"Runtime"`
	Genre      Field  `json:"Genre"`
	Director   Field  `json:"Director"`
	Actors     Field  `json:"Actors"`
	Plot       Field  `json:"Plot"`
	Language   Field  `json:"Language"`
	Country    Field  `json:"Country"`
	Awards     Field  `json:"Awards"`
	ImdbRating Field  `json:"imdbRating"`
	ImdbVotes  Field  `json:"imdbVotes"`
}

// Every OMDb payload carries a success discriminator instead of using
// HTTP status codes.
type searchResponse struct {
	Search   []SearchResult `json:"Search"`
	Response string         `json:"Response"`
	Error    string         `json:"Error"`
}

type detailResponse struct {
	Detail
	Response string `json:"Response"`
	Error    string `json:"Error"`
}
