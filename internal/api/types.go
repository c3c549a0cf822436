package api

import (
	"time"

	"github.com/vmunix/cinelog/internal/catalog"
)

// Request types

type searchRequest struct {
	SearchTerm string `json:"searchTerm"`
}

// Response types

type movieResponse struct {
	ImdbID      string    `json:"imdbID"`
	Title       string    `json:"title"`
	Year        string    `json:"year"`
	Poster      string    `json:"poster"`
	Rating      string    `json:"rating"`
	Runtime     string    `json:"runtime"`
	Genre       []string  `json:"genre"`
	Director    string    `json:"director"`
	Actors      []string  `json:"actors"`
	Plot        string    `json:"plot"`
	Language    string    `json:"language"`
	Country     string    `json:"country"`
	Awards      string    `json:"awards"`
	ImdbRating  string    `json:"imdbRating"`
	ImdbVotes   string    `json:"imdbVotes"`
	LastUpdated time.Time `json:"lastUpdated"`
}

func movieToResponse(m *catalog.Movie) movieResponse {
	return movieResponse{
		ImdbID:      m.ImdbID,
		Title:       m.Title,
		Year:        m.Year,
		Poster:      m.Poster,
		Rating:      m.Rating,
		Runtime:     m.Runtime,
		Genre:       m.Genre,
		Director:    m.Director,
		Actors:      m.Actors,
		Plot:        m.Plot,
		Language:    m.Language,
		Country:     m.Country,
		Awards:      m.Awards,
		ImdbRating:  m.ImdbRating,
		ImdbVotes:   m.ImdbVotes,
		LastUpdated: m.LastUpdated,
	}
}

func moviesToResponse(movies []*catalog.Movie) []movieResponse {
	resp := make([]movieResponse, len(movies))
	for i, m := range movies {
		resp[i] = movieToResponse(m)
	}
	return resp
}

type genreCountResponse struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

type yearRatingResponse struct {
	Year      string  `json:"year"`
	AvgRating float64 `json:"avgRating"`
	Count     int     `json:"count"`
}

type statsResponse struct {
	TotalMovies       int                  `json:"totalMovies"`
	AvgRating         string               `json:"avgRating"`
	AvgRuntime        int                  `json:"avgRuntime"`
	GenreDistribution []genreCountResponse `json:"genreDistribution"`
	RatingsByYear     []yearRatingResponse `json:"ratingsByYear"`
}

type purgeResponse struct {
	Message      string `json:"message"`
	DeletedCount int64  `json:"deletedCount"`
}
