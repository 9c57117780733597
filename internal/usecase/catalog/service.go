// Package catalog serves single-title lookups, batch lookups, the curated
// browse listings, and the offline candidate pool export.
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/kinoworks/cinedex/internal/config"
	"github.com/kinoworks/cinedex/internal/domain"
	"github.com/kinoworks/cinedex/internal/domain/search/query"
	"github.com/kinoworks/cinedex/internal/domain/search/request"
	"github.com/kinoworks/cinedex/internal/domain/search/result"
	"github.com/kinoworks/cinedex/internal/metrics"
)

// maxBatchIDs caps one batch lookup request.
const maxBatchIDs = 100

// topRatedMinVotes keeps statistically meaningless averages out of the
// top-rated listing.
const topRatedMinVotes = 300

// Service handles catalog lookups and curated listings.
type Service struct {
	repo      Repository
	searcher  Searcher
	projector domain.Projector

	poolSize          int
	poolMinVoteCount  int
	poolMinPopularity float64

	now func() time.Time
}

// New creates a catalog service.
func New(repo Repository, searcher Searcher, projector domain.Projector, cfg config.SearchConfig) *Service {
	return &Service{
		repo:              repo,
		searcher:          searcher,
		projector:         projector,
		poolSize:          cfg.PoolSize,
		poolMinVoteCount:  cfg.PoolMinVoteCount,
		poolMinPopularity: cfg.PoolMinPopularity,
		now:               time.Now,
	}
}

// Get returns one projected movie by id.
func (s *Service) Get(ctx context.Context, id string) (domain.Summary, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("get movie: %w", err)
	}
	return s.projector.Project(m), nil
}

// GetBatch returns projected movies for the given ids, in input order,
// silently skipping missing ones. The id list is capped.
func (s *Service) GetBatch(ctx context.Context, ids []string) ([]domain.Summary, error) {
	if len(ids) > maxBatchIDs {
		ids = ids[:maxBatchIDs]
	}
	movies, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("batch lookup: %w", err)
	}
	return s.projector.ProjectAll(movies), nil
}

// Window is the paging slice of a listing request.
type Window struct {
	Page          int
	Size          int
	ViewerIsAdult bool
}

// Popular lists titles by popularity.
func (s *Service) Popular(ctx context.Context, w Window) (result.Page, error) {
	return s.searcher.Search(ctx, s.listing(w, request.Params{
		SortBy: "popularity", SortOrder: "desc",
	}))
}

// NowPlaying lists titles currently in theaters, most popular first.
func (s *Service) NowPlaying(ctx context.Context, w Window) (result.Page, error) {
	np := true
	return s.searcher.Search(ctx, s.listing(w, request.Params{
		NowPlaying: &np,
		SortBy:     "popularity", SortOrder: "desc",
	}))
}

// TopRated lists the best-rated titles with a minimum vote floor.
func (s *Service) TopRated(ctx context.Context, w Window) (result.Page, error) {
	minVotes := topRatedMinVotes
	return s.searcher.Search(ctx, s.listing(w, request.Params{
		MinVoteCount: &minVotes,
		SortBy:       "vote_average", SortOrder: "desc",
	}))
}

// Upcoming lists titles releasing from today on, soonest first.
func (s *Service) Upcoming(ctx context.Context, w Window) (result.Page, error) {
	return s.searcher.Search(ctx, s.listing(w, request.Params{
		ReleaseFrom: s.now().Format("2006-01-02"),
		SortBy:      "release_date", SortOrder: "asc",
	}))
}

// Discover lists popular titles within one genre.
func (s *Service) Discover(ctx context.Context, genreID int, w Window) (result.Page, error) {
	return s.searcher.Search(ctx, s.listing(w, request.Params{
		GenreIDs: []int{genreID},
		SortBy:   "popularity", SortOrder: "desc",
	}))
}

// All lists the whole corpus by popularity.
func (s *Service) All(ctx context.Context, w Window) (result.Page, error) {
	return s.searcher.Search(ctx, s.listing(w, request.Params{
		SortBy: "popularity", SortOrder: "desc",
	}))
}

func (s *Service) listing(w Window, p request.Params) request.Params {
	p.Page = w.Page
	p.Size = w.Size
	p.ViewerIsAdult = w.ViewerIsAdult
	return p
}

// Candidates exports the offline recommendation candidate pool: one bounded
// batch of well-voted, presentable, non-adult titles.
func (s *Service) Candidates(ctx context.Context) ([]domain.Summary, error) {
	q := query.Query{
		Root: query.Bool{
			Filter: []query.Node{
				query.Range{Field: "vote_count", GTE: s.poolMinVoteCount},
				query.Range{Field: "popularity", GTE: s.poolMinPopularity},
				query.Term{Field: "adult", Value: false},
				query.Exists{Field: "poster_path"},
			},
		},
		Sorts: []query.Sort{
			{Field: "vote_count", Order: query.Desc},
			{Field: "popularity", Order: query.Desc},
		},
		Size: s.poolSize,
	}
	movies, _, err := s.repo.Search(ctx, q)
	if err != nil {
		metrics.SearchQueriesTotal.WithLabelValues("candidates", "error").Inc()
		return nil, fmt.Errorf("candidate pool: %w", err)
	}
	metrics.SearchQueriesTotal.WithLabelValues("candidates", "ok").Inc()
	return s.projector.ProjectAll(movies), nil
}
