package movies

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/kinoworks/cinedex/internal/domain"
)

// movieDoc is the wire shape of an indexed movie. The corpus predates strict
// mappings: ids and genre ids arrive as strings or numbers, and counts are
// sometimes indexed as floats, so the loose fields are decoded leniently.
type movieDoc struct {
	ID            any      `json:"id"`
	Title         string   `json:"title"`
	Overview      string   `json:"overview"`
	PosterPath    string   `json:"poster_path"`
	VoteAverage   float64  `json:"vote_average"`
	VoteCount     float64  `json:"vote_count"`
	Popularity    float64  `json:"popularity"`
	ReleaseDate   string   `json:"release_date"`
	GenreIDs      []any    `json:"genre_ids"`
	Runtime       float64  `json:"runtime"`
	Certification string   `json:"certification"`
	OTTProviders  []string `json:"ott_providers"`
	OTTLink       string   `json:"ott_link"`
	IsNowPlaying  bool     `json:"is_now_playing"`
	Adult         bool     `json:"adult"`
	Director      string   `json:"director"`
	Actors        []string `json:"actors"`
}

// decodeMovie converts a raw source document into a domain.Movie. fallbackID
// fills in when the source carries no usable id. Unparseable genre entries
// are dropped; the count is returned for the caller to log.
func decodeMovie(raw json.RawMessage, fallbackID string) (domain.Movie, int, error) {
	var doc movieDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.Movie{}, 0, fmt.Errorf("decode movie document: %w", err)
	}

	id, ok := domain.CoerceID(doc.ID)
	if !ok {
		id = fallbackID
	}

	genreIDs, dropped := domain.CoerceGenreIDs(doc.GenreIDs)

	m := domain.Movie{
		ID:            id,
		Title:         doc.Title,
		Overview:      doc.Overview,
		PosterPath:    doc.PosterPath,
		VoteAverage:   doc.VoteAverage,
		VoteCount:     int(doc.VoteCount),
		Popularity:    doc.Popularity,
		ReleaseDate:   doc.ReleaseDate,
		GenreIDs:      genreIDs,
		Runtime:       int(doc.Runtime),
		Certification: doc.Certification,
		OTTProviders:  doc.OTTProviders,
		OTTLink:       doc.OTTLink,
		IsNowPlaying:  doc.IsNowPlaying,
		Adult:         doc.Adult,
		Director:      doc.Director,
		Actors:        doc.Actors,
	}
	return m, dropped, nil
}
