package recommend

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kinoworks/cinedex/internal/domain"
	"github.com/kinoworks/cinedex/internal/domain/search/query"
)

// More-like-this term selection bounds. Low frequencies matter: the corpus is
// small enough that rare director/actor terms are exactly the signal we want.
const (
	mltMinTermFreq   = 1
	mltMinDocFreq    = 1
	mltMaxQueryTerms = 12
)

// mltFieldSpecs renders a field->boost map into deterministic "field^boost"
// entries, heaviest first.
func mltFieldSpecs(boosts map[string]float64) []string {
	fields := make([]string, 0, len(boosts))
	for f := range boosts {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool {
		if boosts[fields[i]] != boosts[fields[j]] {
			return boosts[fields[i]] > boosts[fields[j]]
		}
		return fields[i] < fields[j]
	})
	specs := make([]string, len(fields))
	for i, f := range fields {
		specs[i] = fmt.Sprintf("%s^%.1f", f, boosts[f])
	}
	return specs
}

// titleForMatching strips numerals from a title so franchise sequels match
// each other ("Toy Story 3" finds "Toy Story"). If stripping leaves fewer
// than two runes the raw title is kept.
func titleForMatching(title string) string {
	stripped := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return -1
		}
		return r
	}, title)
	stripped = strings.TrimSpace(stripped)
	if len([]rune(stripped)) < 2 {
		return title
	}
	return stripped
}

// similarityQuery builds the first-stage query: a more-like-this clause OR a
// strongly boosted title match, filtered to presentable candidates and hard
// excluding the source and restricted titles. An animated source softly
// prefers other animated titles.
func (s *Service) similarityQuery(src domain.Movie, size int) query.Query {
	should := []query.Node{
		query.MoreLikeThis{
			Fields:        s.mltFields,
			LikeID:        src.ID,
			MinTermFreq:   mltMinTermFreq,
			MinDocFreq:    mltMinDocFreq,
			MaxQueryTerms: mltMaxQueryTerms,
		},
		query.Match{
			Field: "title",
			Query: titleForMatching(src.Title),
			Boost: s.titleBoost,
		},
	}
	if src.IsAnimation() {
		should = append(should, query.Term{Field: "genre_ids", Value: domain.GenreAnimation})
	}

	return query.Query{
		Root: query.Bool{
			Should:             should,
			MinimumShouldMatch: "1",
			Filter: []query.Node{
				query.Exists{Field: "poster_path"},
			},
			MustNot: []query.Node{
				query.IDs{Values: []string{src.ID}},
				query.Terms{
					Field:  "certification",
					Values: query.StringsToValues(domain.RecommendExcludedCertifications()),
				},
			},
		},
		Size: size,
	}
}

// fallbackQuery builds the second-stage query: same-genre titles ordered by
// popularity then rating, excluding the source and everything already picked.
func (s *Service) fallbackQuery(src domain.Movie, exclude []string, size int) query.Query {
	return query.Query{
		Root: query.Bool{
			Filter: []query.Node{
				query.Terms{Field: "genre_ids", Values: query.IntsToValues(src.GenreIDs)},
				query.Exists{Field: "poster_path"},
			},
			MustNot: []query.Node{
				query.IDs{Values: exclude},
				query.Terms{
					Field:  "certification",
					Values: query.StringsToValues(domain.RecommendExcludedCertifications()),
				},
			},
		},
		Sorts: []query.Sort{
			{Field: "popularity", Order: query.Desc},
			{Field: "vote_average", Order: query.Desc},
		},
		Size: size,
	}
}
