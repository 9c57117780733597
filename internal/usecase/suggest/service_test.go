package suggest

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/kinoworks/cinedex/internal/domain"
	"github.com/kinoworks/cinedex/internal/domain/search/query"
)

// --- Mocks ---

type mockRepo struct {
	lastQuery   query.Query
	lastText    string
	lastSize    int
	movies      []domain.Movie
	suggestions []string
	err         error
	calls       int
}

func (m *mockRepo) Search(_ context.Context, q query.Query) ([]domain.Movie, int64, error) {
	m.calls++
	m.lastQuery = q
	return m.movies, int64(len(m.movies)), m.err
}

func (m *mockRepo) Suggest(_ context.Context, text string, size int) ([]string, error) {
	m.calls++
	m.lastText = text
	m.lastSize = size
	return m.suggestions, m.err
}

// --- Tests ---

func TestAutocomplete_BlankShortCircuits(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo)

	got, err := svc.Autocomplete(context.Background(), "   ", 10)
	if err != nil || len(got) != 0 {
		t.Errorf("got (%v, %v), want empty without error", got, err)
	}
	if repo.calls != 0 {
		t.Error("blank prefix must not hit the backend")
	}
}

func TestAutocomplete_QueryShape(t *testing.T) {
	repo := &mockRepo{movies: []domain.Movie{{
		ID:          "1",
		Title:       "Toy Story",
		ReleaseDate: "1995-11-22",
		Overview:    "plot text",
		PosterPath:  "/p.jpg",
		GenreIDs:    []int{16},
	}}}
	svc := New(repo)

	got, err := svc.Autocomplete(context.Background(), "toy st", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Heavyweight document fields never reach the typeahead payload.
	want := []Item{{MovieID: "1", Title: "Toy Story", ReleaseDate: "1995-11-22"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("items = %+v, want %+v", got, want)
	}

	m, ok := repo.lastQuery.Root.(query.Match)
	if !ok {
		t.Fatalf("root = %T, want Match", repo.lastQuery.Root)
	}
	if m.Field != "title.ngram" || m.Operator != query.OperatorAnd {
		t.Errorf("match = %+v, want title.ngram with AND", m)
	}
	if repo.lastQuery.Size != DefaultAutocompleteSize {
		t.Errorf("size = %d, want default %d", repo.lastQuery.Size, DefaultAutocompleteSize)
	}
}

func TestAutocomplete_ClampsSize(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo)

	if _, err := svc.Autocomplete(context.Background(), "x", 9999); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastQuery.Size != maxAutocompleteSize {
		t.Errorf("size = %d, want clamped to %d", repo.lastQuery.Size, maxAutocompleteSize)
	}
}

func TestSpelling_Blank(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo)

	got, err := svc.Spelling(context.Background(), " ")
	if err != nil || len(got) != 0 {
		t.Errorf("got (%v, %v), want empty without error", got, err)
	}
	if repo.calls != 0 {
		t.Error("blank input must not hit the backend")
	}
}

func TestSpelling_PassesThrough(t *testing.T) {
	repo := &mockRepo{suggestions: []string{"inception"}}
	svc := New(repo)

	got, err := svc.Spelling(context.Background(), "inceptoin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"inception"}) {
		t.Errorf("got %v", got)
	}
	if repo.lastText != "inceptoin" || repo.lastSize != spellingSize {
		t.Errorf("suggest call = (%q, %d)", repo.lastText, repo.lastSize)
	}
}

func TestSpelling_NilBecomesEmpty(t *testing.T) {
	repo := &mockRepo{suggestions: nil}
	svc := New(repo)

	got, err := svc.Spelling(context.Background(), "zzz")
	if err != nil || got == nil {
		t.Errorf("got (%v, %v), want non-nil empty slice", got, err)
	}
}

func TestSpelling_PropagatesError(t *testing.T) {
	repo := &mockRepo{err: domain.ErrBackendUnavailable}
	svc := New(repo)

	_, err := svc.Spelling(context.Background(), "x")
	if !errors.Is(err, domain.ErrBackendUnavailable) {
		t.Errorf("err = %v, want ErrBackendUnavailable", err)
	}
}
