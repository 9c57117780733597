// Package request models an inbound search request after validation. The
// constructor clamps and defaults rather than rejecting: a malformed knob
// degrades to its safe default so a search request never fails validation.
package request

import (
	"strings"
	"time"
)

// Pagination bounds applied when the caller does not override them.
const (
	DefaultSize = 20
	MaxSize     = 100
)

// sortableFields is the whitelist of fields a caller may sort on. Anything
// else falls back to relevance ordering.
var sortableFields = map[string]bool{
	"popularity":   true,
	"vote_average": true,
	"vote_count":   true,
	"release_date": true,
	"runtime":      true,
}

// Params carries the raw, untrusted knobs of a search request.
type Params struct {
	Keyword       string
	NowPlaying    *bool
	GenreIDs      []int
	MinRating     *float64
	MinVoteCount  *int
	ReleaseFrom   string
	ReleaseTo     string
	SortBy        string
	SortOrder     string
	Page          int
	Size          int
	ViewerIsAdult bool
}

// Request is a validated search request. Construct via New.
type Request struct {
	keyword       string
	nowPlaying    *bool
	genreIDs      []int
	minRating     *float64
	minVoteCount  *int
	releaseFrom   string
	releaseTo     string
	sortBy        string
	sortDesc      bool
	page          int
	size          int
	viewerIsAdult bool
}

// New builds a Request from raw params, clamping everything out of range:
// negative pages become 0, sizes are bounded by [1, maxSize] with defSize as
// the fallback, unknown sort fields and unparseable dates are dropped, and
// ratings are clamped into [0, 10]. Pass 0 for defSize/maxSize to use the
// package defaults.
func New(p Params, defSize, maxSize int) Request {
	if defSize <= 0 {
		defSize = DefaultSize
	}
	if maxSize <= 0 {
		maxSize = MaxSize
	}

	r := Request{
		keyword:       strings.TrimSpace(p.Keyword),
		nowPlaying:    p.NowPlaying,
		minVoteCount:  p.MinVoteCount,
		viewerIsAdult: p.ViewerIsAdult,
	}

	if len(p.GenreIDs) > 0 {
		r.genreIDs = make([]int, len(p.GenreIDs))
		copy(r.genreIDs, p.GenreIDs)
	}

	if p.MinRating != nil {
		v := *p.MinRating
		if v < 0 {
			v = 0
		}
		if v > 10 {
			v = 10
		}
		r.minRating = &v
	}

	if isDate(p.ReleaseFrom) {
		r.releaseFrom = p.ReleaseFrom
	}
	if isDate(p.ReleaseTo) {
		r.releaseTo = p.ReleaseTo
	}

	if sortableFields[p.SortBy] {
		r.sortBy = p.SortBy
		r.sortDesc = !strings.EqualFold(p.SortOrder, "asc")
	}

	r.page = p.Page
	if r.page < 0 {
		r.page = 0
	}
	r.size = p.Size
	if r.size <= 0 {
		r.size = defSize
	}
	if r.size > maxSize {
		r.size = maxSize
	}

	return r
}

func isDate(s string) bool {
	if s == "" {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// Keyword returns the trimmed search keyword; empty means browse-only.
func (r Request) Keyword() string { return r.keyword }

// HasKeyword reports whether the request carries a text query.
func (r Request) HasKeyword() bool { return r.keyword != "" }

// NowPlaying returns the in-theaters filter, nil when unset.
func (r Request) NowPlaying() *bool { return r.nowPlaying }

// GenreIDs returns the genre filter, empty when unset.
func (r Request) GenreIDs() []int { return r.genreIDs }

// MinRating returns the minimum average rating filter, nil when unset.
func (r Request) MinRating() *float64 { return r.minRating }

// MinVoteCount returns the minimum vote count filter, nil when unset.
func (r Request) MinVoteCount() *int { return r.minVoteCount }

// ReleaseFrom returns the inclusive release date lower bound, "" when unset.
func (r Request) ReleaseFrom() string { return r.releaseFrom }

// ReleaseTo returns the inclusive release date upper bound, "" when unset.
func (r Request) ReleaseTo() string { return r.releaseTo }

// SortBy returns the whitelisted sort field, "" for relevance ordering.
func (r Request) SortBy() string { return r.sortBy }

// SortDesc reports whether the explicit sort runs descending.
func (r Request) SortDesc() bool { return r.sortDesc }

// Page returns the zero-based page number.
func (r Request) Page() int { return r.page }

// Size returns the clamped page size.
func (r Request) Size() int { return r.size }

// ViewerIsAdult reports whether restricted titles may be shown.
func (r Request) ViewerIsAdult() bool { return r.viewerIsAdult }

// From returns the paging offset derived from page and size.
func (r Request) From() int { return r.page * r.size }
