package movies

import "github.com/kinoworks/cinedex/internal/domain/search/query"

// Compile translates a backend-agnostic query into the store's native search
// body. It is the only place in the repo that knows the wire DSL.
func Compile(q query.Query) map[string]any {
	root := compileNode(q.Root)
	if q.Boost != nil {
		root = map[string]any{
			"function_score": map[string]any{
				"query": root,
				"functions": []any{
					map[string]any{
						"field_value_factor": map[string]any{
							"field":    q.Boost.Field,
							"factor":   q.Boost.Factor,
							"modifier": "log1p",
							"missing":  q.Boost.Missing,
						},
						"weight": q.Boost.Weight,
					},
				},
				"score_mode": "sum",
				"boost_mode": "sum",
			},
		}
	}

	body := map[string]any{
		"query": root,
		"from":  q.From,
		"size":  q.Size,
	}
	if len(q.Sorts) > 0 {
		sorts := make([]any, 0, len(q.Sorts)+1)
		for _, s := range q.Sorts {
			sorts = append(sorts, map[string]any{
				s.Field: map[string]any{"order": string(s.Order)},
			})
		}
		// Deterministic pagination needs a total order.
		sorts = append(sorts, map[string]any{"id": map[string]any{"order": "asc"}})
		body["sort"] = sorts
	}
	return body
}

func compileNode(n query.Node) map[string]any {
	switch v := n.(type) {
	case nil:
		return map[string]any{"match_all": map[string]any{}}
	case query.Bool:
		return compileBool(v)
	case query.Term:
		return map[string]any{"term": map[string]any{v.Field: v.Value}}
	case query.Terms:
		return map[string]any{"terms": map[string]any{v.Field: v.Values}}
	case query.Range:
		bounds := map[string]any{}
		if v.GTE != nil {
			bounds["gte"] = v.GTE
		}
		if v.LTE != nil {
			bounds["lte"] = v.LTE
		}
		return map[string]any{"range": map[string]any{v.Field: bounds}}
	case query.Match:
		m := map[string]any{"query": v.Query}
		if v.Operator != "" {
			m["operator"] = string(v.Operator)
		}
		if v.Boost != 0 {
			m["boost"] = v.Boost
		}
		return map[string]any{"match": map[string]any{v.Field: m}}
	case query.MultiMatch:
		m := map[string]any{
			"query":  v.Query,
			"fields": v.Fields,
		}
		if v.Operator != "" {
			m["operator"] = string(v.Operator)
		}
		return map[string]any{"multi_match": m}
	case query.MoreLikeThis:
		return map[string]any{
			"more_like_this": map[string]any{
				"fields":          v.Fields,
				"like":            []any{map[string]any{"_id": v.LikeID}},
				"min_term_freq":   v.MinTermFreq,
				"min_doc_freq":    v.MinDocFreq,
				"max_query_terms": v.MaxQueryTerms,
			},
		}
	case query.IDs:
		return map[string]any{"ids": map[string]any{"values": v.Values}}
	case query.Exists:
		return map[string]any{"exists": map[string]any{"field": v.Field}}
	default:
		return map[string]any{"match_all": map[string]any{}}
	}
}

func compileBool(b query.Bool) map[string]any {
	if b.IsEmpty() {
		return map[string]any{"match_all": map[string]any{}}
	}
	clause := map[string]any{}
	if len(b.Must) > 0 {
		clause["must"] = compileNodes(b.Must)
	}
	if len(b.Should) > 0 {
		clause["should"] = compileNodes(b.Should)
	}
	if len(b.Filter) > 0 {
		clause["filter"] = compileNodes(b.Filter)
	}
	if len(b.MustNot) > 0 {
		clause["must_not"] = compileNodes(b.MustNot)
	}
	if b.MinimumShouldMatch != "" && len(b.Should) > 0 {
		clause["minimum_should_match"] = b.MinimumShouldMatch
	}
	return map[string]any{"bool": clause}
}

func compileNodes(ns []query.Node) []any {
	out := make([]any, len(ns))
	for i, n := range ns {
		out[i] = compileNode(n)
	}
	return out
}
