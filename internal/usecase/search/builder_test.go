package search

import (
	"reflect"
	"testing"

	"github.com/kinoworks/cinedex/internal/domain/search/query"
	"github.com/kinoworks/cinedex/internal/domain/search/request"
)

func TestBuild_KeywordBecomesMultiMatch(t *testing.T) {
	b := Builder{}.Build(request.New(request.Params{Keyword: "pixar"}, 0, 0))

	if len(b.Must) != 1 {
		t.Fatalf("must clauses = %d, want 1", len(b.Must))
	}
	mm, ok := b.Must[0].(query.MultiMatch)
	if !ok {
		t.Fatalf("must[0] = %T, want MultiMatch", b.Must[0])
	}
	if mm.Query != "pixar" || mm.Operator != query.OperatorOr {
		t.Errorf("multi match = %+v", mm)
	}
	if !reflect.DeepEqual(mm.Fields, []string{"title", "title.ngram", "companies"}) {
		t.Errorf("fields = %v", mm.Fields)
	}
}

func TestBuild_BrowseWithoutKeyword(t *testing.T) {
	b := Builder{}.Build(request.New(request.Params{ViewerIsAdult: true}, 0, 0))
	if !b.IsEmpty() {
		t.Errorf("expected empty tree for an unfiltered adult browse, got %+v", b)
	}
}

func TestBuild_FilterClauses(t *testing.T) {
	np := true
	minRating := 7.0
	minVotes := 100
	req := request.New(request.Params{
		NowPlaying:    &np,
		GenreIDs:      []int{28, 12},
		MinRating:     &minRating,
		MinVoteCount:  &minVotes,
		ReleaseFrom:   "2020-01-01",
		ReleaseTo:     "2024-12-31",
		ViewerIsAdult: true,
	}, 0, 0)

	b := Builder{}.Build(req)
	want := []query.Node{
		query.Term{Field: "is_now_playing", Value: true},
		query.Terms{Field: "genre_ids", Values: []any{28, 12}},
		query.Range{Field: "vote_average", GTE: 7.0},
		query.Range{Field: "vote_count", GTE: 100},
		query.Range{Field: "release_date", GTE: "2020-01-01", LTE: "2024-12-31"},
	}
	if !reflect.DeepEqual(b.Filter, want) {
		t.Errorf("filter = %#v, want %#v", b.Filter, want)
	}
	if len(b.MustNot) != 0 {
		t.Errorf("adult viewer must not get a certification exclusion: %+v", b.MustNot)
	}
}

func TestBuild_NonAdultExcludesRestricted(t *testing.T) {
	b := Builder{}.Build(request.New(request.Params{}, 0, 0))

	if len(b.MustNot) != 1 {
		t.Fatalf("must_not clauses = %d, want 1", len(b.MustNot))
	}
	terms, ok := b.MustNot[0].(query.Terms)
	if !ok || terms.Field != "certification" {
		t.Fatalf("must_not[0] = %#v, want certification terms", b.MustNot[0])
	}
	want := []any{"18", "19+", "19", "청소년관람불가"}
	if !reflect.DeepEqual(terms.Values, want) {
		t.Errorf("restricted set = %v, want %v", terms.Values, want)
	}
}

func TestRank_ExplicitSortSkipsBoost(t *testing.T) {
	r := Ranker{BoostWeight: 1.2, BoostFactor: 1.2}
	req := request.New(request.Params{SortBy: "release_date", SortOrder: "asc", Page: 2, Size: 30}, 0, 0)

	q := r.Rank(query.Bool{}, req)
	if q.Boost != nil {
		t.Error("explicit sort must not carry a quality boost")
	}
	if !reflect.DeepEqual(q.Sorts, []query.Sort{{Field: "release_date", Order: query.Asc}}) {
		t.Errorf("sorts = %+v", q.Sorts)
	}
	if q.From != 60 || q.Size != 30 {
		t.Errorf("window = (%d, %d), want (60, 30)", q.From, q.Size)
	}
}

func TestRank_RelevanceGetsQualityBoost(t *testing.T) {
	r := Ranker{BoostWeight: 1.2, BoostFactor: 1.2}
	q := r.Rank(query.Bool{}, request.New(request.Params{Keyword: "dune"}, 0, 0))

	if len(q.Sorts) != 0 {
		t.Errorf("relevance ranking must not carry explicit sorts: %+v", q.Sorts)
	}
	if q.Boost == nil {
		t.Fatal("expected quality boost")
	}
	want := &query.QualityBoost{Field: "vote_average", Factor: 1.2, Missing: 1.0, Weight: 1.2}
	if !reflect.DeepEqual(q.Boost, want) {
		t.Errorf("boost = %+v, want %+v", q.Boost, want)
	}
}
