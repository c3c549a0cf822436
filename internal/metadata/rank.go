package metadata

import (
	"sort"
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/vmunix/cinelog/internal/catalog"
)

// rankBySimilarity orders cached results by Jaro-Winkler similarity of
// title to the search term, best match first. The sort is stable so equally
// scored records keep their store order.
func rankBySimilarity(movies []*catalog.Movie, term string) {
	q := normalizeTitle(term)
	type scored struct {
		movie *catalog.Movie
		score float64
	}
	pairs := make([]scored, len(movies))
	for i, m := range movies {
		pairs[i] = scored{m, float64(edlib.JaroWinklerSimilarity(normalizeTitle(m.Title), q))}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].score > pairs[j].score
	})
	for i, p := range pairs {
		movies[i] = p.movie
	}
}

// normalizeTitle lowercases and strips accents for matching purposes.
func normalizeTitle(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return result
}
