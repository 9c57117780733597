package search

import (
	"github.com/kinoworks/cinedex/internal/domain/search/query"
	"github.com/kinoworks/cinedex/internal/domain/search/request"
)

// Ranker decides how a page of results is ordered: strictly by an explicit
// sort field, or by text relevance blended with a quality signal when no sort
// is requested.
type Ranker struct {
	// BoostWeight and BoostFactor parameterize the quality boost summed onto
	// the relevance score: weight * log1p(factor * vote_average).
	BoostWeight float64
	BoostFactor float64
}

// Rank attaches ordering and paging to a predicate tree.
func (r Ranker) Rank(root query.Bool, req request.Request) query.Query {
	q := query.Query{
		Root: root,
		From: req.From(),
		Size: req.Size(),
	}

	if req.SortBy() != "" {
		order := query.Asc
		if req.SortDesc() {
			order = query.Desc
		}
		q.Sorts = []query.Sort{{Field: req.SortBy(), Order: order}}
		return q
	}

	q.Boost = &query.QualityBoost{
		Field:   "vote_average",
		Factor:  r.BoostFactor,
		Missing: 1.0,
		Weight:  r.BoostWeight,
	}
	return q
}
