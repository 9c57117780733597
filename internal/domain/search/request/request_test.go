package request

import (
	"reflect"
	"testing"
)

func TestNew_Defaults(t *testing.T) {
	r := New(Params{}, 0, 0)

	if r.Page() != 0 {
		t.Errorf("page = %d, want 0", r.Page())
	}
	if r.Size() != DefaultSize {
		t.Errorf("size = %d, want %d", r.Size(), DefaultSize)
	}
	if r.HasKeyword() {
		t.Error("expected no keyword")
	}
	if r.SortBy() != "" {
		t.Errorf("sortBy = %q, want relevance", r.SortBy())
	}
}

func TestNew_ClampsPaging(t *testing.T) {
	r := New(Params{Page: -3, Size: 10_000}, 20, 100)
	if r.Page() != 0 {
		t.Errorf("page = %d, want 0", r.Page())
	}
	if r.Size() != 100 {
		t.Errorf("size = %d, want 100", r.Size())
	}

	r = New(Params{Size: -1}, 25, 100)
	if r.Size() != 25 {
		t.Errorf("size = %d, want default 25", r.Size())
	}
}

func TestNew_From(t *testing.T) {
	r := New(Params{Page: 3, Size: 20}, 0, 0)
	if r.From() != 60 {
		t.Errorf("from = %d, want 60", r.From())
	}
}

func TestNew_SortWhitelist(t *testing.T) {
	r := New(Params{SortBy: "popularity", SortOrder: "asc"}, 0, 0)
	if r.SortBy() != "popularity" || r.SortDesc() {
		t.Errorf("sort = (%q, desc=%v), want (popularity, asc)", r.SortBy(), r.SortDesc())
	}

	// Unknown order defaults to descending.
	r = New(Params{SortBy: "vote_average", SortOrder: "sideways"}, 0, 0)
	if !r.SortDesc() {
		t.Error("expected descending for unknown order")
	}

	// Unknown field falls back to relevance.
	r = New(Params{SortBy: "_score; DROP TABLE"}, 0, 0)
	if r.SortBy() != "" {
		t.Errorf("sortBy = %q, want dropped", r.SortBy())
	}
}

func TestNew_ClampsRating(t *testing.T) {
	low, high := -1.5, 22.0
	r := New(Params{MinRating: &low}, 0, 0)
	if *r.MinRating() != 0 {
		t.Errorf("minRating = %v, want 0", *r.MinRating())
	}
	r = New(Params{MinRating: &high}, 0, 0)
	if *r.MinRating() != 10 {
		t.Errorf("minRating = %v, want 10", *r.MinRating())
	}
}

func TestNew_DropsMalformedDates(t *testing.T) {
	r := New(Params{ReleaseFrom: "2024-13-99", ReleaseTo: "2024-01-31"}, 0, 0)
	if r.ReleaseFrom() != "" {
		t.Errorf("releaseFrom = %q, want dropped", r.ReleaseFrom())
	}
	if r.ReleaseTo() != "2024-01-31" {
		t.Errorf("releaseTo = %q, want kept", r.ReleaseTo())
	}
}

func TestNew_TrimsKeyword(t *testing.T) {
	r := New(Params{Keyword: "  inception  "}, 0, 0)
	if r.Keyword() != "inception" {
		t.Errorf("keyword = %q", r.Keyword())
	}
	if !r.HasKeyword() {
		t.Error("expected keyword")
	}
}

func TestNew_CopiesGenreIDs(t *testing.T) {
	in := []int{28, 12}
	r := New(Params{GenreIDs: in}, 0, 0)
	in[0] = 999
	if !reflect.DeepEqual(r.GenreIDs(), []int{28, 12}) {
		t.Errorf("genre ids = %v, want insulated copy", r.GenreIDs())
	}
}
