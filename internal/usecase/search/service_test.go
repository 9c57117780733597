package search

import (
	"context"
	"errors"
	"testing"

	"github.com/kinoworks/cinedex/internal/config"
	"github.com/kinoworks/cinedex/internal/domain"
	"github.com/kinoworks/cinedex/internal/domain/search/query"
	"github.com/kinoworks/cinedex/internal/domain/search/request"
)

// --- Mocks ---

type mockRepo struct {
	lastQuery query.Query
	movies    []domain.Movie
	total     int64
	err       error
}

func (m *mockRepo) Search(_ context.Context, q query.Query) ([]domain.Movie, int64, error) {
	m.lastQuery = q
	return m.movies, m.total, m.err
}

func testConfig() config.SearchConfig {
	cfg := config.Config{}
	cfg.ApplyDefaults()
	return cfg.Search
}

// --- Tests ---

func TestSearch_ProjectsResults(t *testing.T) {
	repo := &mockRepo{
		movies: []domain.Movie{{ID: "550", Title: "Fight Club", PosterPath: "/x.jpg"}},
		total:  42,
	}
	svc := New(repo, domain.Projector{PosterBaseURL: "https://img.test"}, testConfig())

	page, err := svc.Search(context.Background(), request.Params{Keyword: "fight"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Total != 42 || page.Size != 20 || page.Page != 0 {
		t.Errorf("page meta = %+v", page)
	}
	if len(page.Results) != 1 || page.Results[0].MovieID != "550" {
		t.Fatalf("results = %+v", page.Results)
	}
	if page.Results[0].PosterURL == nil || *page.Results[0].PosterURL != "https://img.test/x.jpg" {
		t.Errorf("poster URL not projected: %+v", page.Results[0])
	}
}

func TestSearch_PropagatesBackendError(t *testing.T) {
	repo := &mockRepo{err: domain.ErrBackendUnavailable}
	svc := New(repo, domain.Projector{}, testConfig())

	_, err := svc.Search(context.Background(), request.Params{Keyword: "x"})
	if !errors.Is(err, domain.ErrBackendUnavailable) {
		t.Errorf("err = %v, want ErrBackendUnavailable", err)
	}
}

func TestSearch_QueryCarriesGating(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo, domain.Projector{}, testConfig())

	if _, err := svc.Search(context.Background(), request.Params{Keyword: "x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	root, ok := repo.lastQuery.Root.(query.Bool)
	if !ok {
		t.Fatalf("root = %T, want Bool", repo.lastQuery.Root)
	}
	if len(root.MustNot) != 1 {
		t.Errorf("non-adult request must exclude restricted certifications: %+v", root.MustNot)
	}
	if repo.lastQuery.Boost == nil {
		t.Error("keyword search without sort must carry the quality boost")
	}
}

func TestSearch_ClampsOversizedPage(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo, domain.Projector{}, testConfig())

	page, err := svc.Search(context.Background(), request.Params{Size: 5000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Size != 100 || repo.lastQuery.Size != 100 {
		t.Errorf("size = %d (query %d), want clamped to 100", page.Size, repo.lastQuery.Size)
	}
}
