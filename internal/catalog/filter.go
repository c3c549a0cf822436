package catalog

// Filter specifies criteria for listing movies.
type Filter struct {
	Search    string   // free-text match over title and plot
	Genre     string   // exact genre membership
	Year      string   // exact year
	MinRating *float64 // minimum rating threshold (records with unknown rating excluded)
	Sort      string   // sort field; see sortColumns for accepted values
	Order     string   // "asc" or "desc"
	Limit     int      // 0 = MaxListResults; always capped at MaxListResults
}

// sortColumns maps API sort fields to SQL expressions. Anything not listed
// falls back to the default rating sort.
var sortColumns = map[string]string{
	"title":       "title",
	"year":        "year",
	"rating":      "CAST(rating AS REAL)",
	"imdbVotes":   "CAST(REPLACE(imdb_votes, ',', '') AS REAL)",
	"lastUpdated": "last_updated",
}
