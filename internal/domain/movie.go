package domain

import (
	"strconv"
	"strings"
)

// Movie is a read-only snapshot of an indexed movie document. It mirrors the
// corpus schema; projection into the external Summary shape happens through
// Projector.
type Movie struct {
	ID            string
	Title         string
	Overview      string
	PosterPath    string
	VoteAverage   float64
	VoteCount     int
	Popularity    float64
	ReleaseDate   string
	GenreIDs      []int
	Runtime       int
	Certification string
	OTTProviders  []string
	OTTLink       string
	IsNowPlaying  bool
	Adult         bool
	Director      string
	Actors        []string
}

// HasGenre reports whether the movie carries the given genre id.
func (m Movie) HasGenre(id int) bool {
	for _, g := range m.GenreIDs {
		if g == id {
			return true
		}
	}
	return false
}

// IsAnimation reports whether the movie is classified as an animated title.
func (m Movie) IsAnimation() bool {
	return m.HasGenre(GenreAnimation)
}

// Summary is the external-facing projection of a Movie: whitelisted fields,
// derived poster URL, canonical integer genre ids.
type Summary struct {
	MovieID       string   `json:"movieId"`
	Title         string   `json:"title"`
	Overview      string   `json:"overview"`
	PosterURL     *string  `json:"posterUrl"`
	VoteAverage   float64  `json:"voteAverage"`
	ReleaseDate   string   `json:"releaseDate"`
	IsNowPlaying  bool     `json:"isNowPlaying"`
	OTTProviders  []string `json:"ottProviders,omitempty"`
	OTTLink       string   `json:"ottLink,omitempty"`
	Runtime       int      `json:"runtime"`
	Certification string   `json:"certification,omitempty"`
	GenreIDs      []int    `json:"genreIds"`
}

// Projector maps indexed documents to their external Summary shape.
// Project is total: it never fails, whatever the document carries.
type Projector struct {
	PosterBaseURL string
}

// Project converts a Movie into its Summary projection.
func (p Projector) Project(m Movie) Summary {
	s := Summary{
		MovieID:       m.ID,
		Title:         m.Title,
		Overview:      m.Overview,
		VoteAverage:   m.VoteAverage,
		ReleaseDate:   m.ReleaseDate,
		IsNowPlaying:  m.IsNowPlaying,
		OTTProviders:  m.OTTProviders,
		OTTLink:       m.OTTLink,
		Runtime:       m.Runtime,
		Certification: m.Certification,
		GenreIDs:      dedupInts(m.GenreIDs),
	}
	if m.PosterPath != "" {
		url := p.PosterBaseURL + m.PosterPath
		s.PosterURL = &url
	}
	return s
}

// ProjectAll converts a slice of movies, preserving order.
func (p Projector) ProjectAll(movies []Movie) []Summary {
	out := make([]Summary, len(movies))
	for i, m := range movies {
		out[i] = p.Project(m)
	}
	return out
}

// dedupInts removes duplicates preserving first-seen order.
func dedupInts(in []int) []int {
	if in == nil {
		return nil
	}
	seen := make(map[int]bool, len(in))
	out := make([]int, 0, len(in))
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// CoerceGenreID converts one heterogeneous genre id representation (number,
// numeric string, float) into its canonical integer form.
// Legacy corpus entries mix all three.
func CoerceGenreID(raw any) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// CoerceGenreIDs converts a heterogeneous genre id list, silently dropping
// unparseable entries. The dropped count is returned so callers can log it;
// a bad entry never fails the rest of the document.
func CoerceGenreIDs(raw []any) (ids []int, dropped int) {
	for _, r := range raw {
		if r == nil {
			dropped++
			continue
		}
		id, ok := CoerceGenreID(r)
		if !ok {
			dropped++
			continue
		}
		ids = append(ids, id)
	}
	return ids, dropped
}

// CoerceID normalizes a document id that may arrive as a JSON string or a bare
// number. Historic documents were indexed with either.
func CoerceID(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		if v == "" {
			return "", false
		}
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	default:
		return "", false
	}
}
