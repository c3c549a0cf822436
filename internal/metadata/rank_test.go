package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vmunix/cinelog/internal/catalog"
)

func titled(titles ...string) []*catalog.Movie {
	movies := make([]*catalog.Movie, len(titles))
	for i, title := range titles {
		movies[i] = &catalog.Movie{Title: title}
	}
	return movies
}

func titlesOf(movies []*catalog.Movie) []string {
	titles := make([]string, len(movies))
	for i, m := range movies {
		titles[i] = m.Title
	}
	return titles
}

func TestRankBySimilarity(t *testing.T) {
	movies := titled("The Matrix Revolutions", "The Matrix", "The Matrix Reloaded")

	rankBySimilarity(movies, "The Matrix")

	assert.Equal(t, "The Matrix", movies[0].Title)
}

func TestRankBySimilarity_CaseInsensitive(t *testing.T) {
	movies := titled("Something Else", "HEAT")

	rankBySimilarity(movies, "heat")

	assert.Equal(t, "HEAT", movies[0].Title)
}

func TestRankBySimilarity_Accents(t *testing.T) {
	movies := titled("Unrelated", "Amélie")

	rankBySimilarity(movies, "Amelie")

	assert.Equal(t, "Amélie", movies[0].Title)
}

func TestRankBySimilarity_StableOnTies(t *testing.T) {
	movies := titled("Alien", "Alien")

	rankBySimilarity(movies, "Alien")

	assert.Equal(t, []string{"Alien", "Alien"}, titlesOf(movies))
}

func TestNormalizeTitle(t *testing.T) {
	assert.Equal(t, "amelie", normalizeTitle("Amélie"))
	assert.Equal(t, "leon", normalizeTitle("Léon"))
	assert.Equal(t, "the matrix", normalizeTitle("The Matrix"))
}
