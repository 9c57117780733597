package search

import (
	"github.com/kinoworks/cinedex/internal/domain"
	"github.com/kinoworks/cinedex/internal/domain/search/query"
	"github.com/kinoworks/cinedex/internal/domain/search/request"
)

// keywordFields are the analyzed fields a free-text keyword matches against.
// The ngram subfield catches partial titles, companies catches studio names.
var keywordFields = []string{"title", "title.ngram", "companies"}

// Builder assembles the predicate tree for a discovery search. It is pure:
// no I/O, fully unit-testable.
type Builder struct{}

// Build translates a validated request into a predicate tree. Every knob maps
// to one clause; an unset knob contributes nothing.
func (Builder) Build(req request.Request) query.Bool {
	var b query.Bool

	if req.HasKeyword() {
		b.Must = append(b.Must, query.MultiMatch{
			Fields:   keywordFields,
			Query:    req.Keyword(),
			Operator: query.OperatorOr,
		})
	}

	if np := req.NowPlaying(); np != nil {
		b.Filter = append(b.Filter, query.Term{Field: "is_now_playing", Value: *np})
	}
	if ids := req.GenreIDs(); len(ids) > 0 {
		b.Filter = append(b.Filter, query.Terms{Field: "genre_ids", Values: query.IntsToValues(ids)})
	}
	if r := req.MinRating(); r != nil {
		b.Filter = append(b.Filter, query.Range{Field: "vote_average", GTE: *r})
	}
	if c := req.MinVoteCount(); c != nil {
		b.Filter = append(b.Filter, query.Range{Field: "vote_count", GTE: *c})
	}
	if req.ReleaseFrom() != "" || req.ReleaseTo() != "" {
		rng := query.Range{Field: "release_date"}
		if req.ReleaseFrom() != "" {
			rng.GTE = req.ReleaseFrom()
		}
		if req.ReleaseTo() != "" {
			rng.LTE = req.ReleaseTo()
		}
		b.Filter = append(b.Filter, rng)
	}

	if !req.ViewerIsAdult() {
		b.MustNot = append(b.MustNot, query.Terms{
			Field:  "certification",
			Values: query.StringsToValues(domain.RestrictedCertifications()),
		})
	}

	return b
}
