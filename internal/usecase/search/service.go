// Package search implements keyword + filter discovery search over the movie
// corpus.
package search

import (
	"context"
	"fmt"

	"github.com/kinoworks/cinedex/internal/config"
	"github.com/kinoworks/cinedex/internal/domain"
	"github.com/kinoworks/cinedex/internal/domain/search/request"
	"github.com/kinoworks/cinedex/internal/domain/search/result"
	"github.com/kinoworks/cinedex/internal/metrics"
)

// Service handles discovery search requests.
type Service struct {
	repo      Repository
	projector domain.Projector
	builder   Builder
	ranker    Ranker
	defSize   int
	maxSize   int
}

// New creates a search service.
func New(repo Repository, projector domain.Projector, cfg config.SearchConfig) *Service {
	return &Service{
		repo:      repo,
		projector: projector,
		ranker: Ranker{
			BoostWeight: cfg.QualityBoostWeight,
			BoostFactor: cfg.QualityBoostFactor,
		},
		defSize: cfg.DefaultPageSize,
		maxSize: cfg.MaxPageSize,
	}
}

// Search validates the raw params, builds and ranks the query, and returns
// one projected page of results.
func (s *Service) Search(ctx context.Context, p request.Params) (result.Page, error) {
	req := request.New(p, s.defSize, s.maxSize)
	q := s.ranker.Rank(s.builder.Build(req), req)

	movies, total, err := s.repo.Search(ctx, q)
	if err != nil {
		metrics.SearchQueriesTotal.WithLabelValues("search", "error").Inc()
		return result.Page{}, fmt.Errorf("search movies: %w", err)
	}
	metrics.SearchQueriesTotal.WithLabelValues("search", "ok").Inc()

	return result.Page{
		Total:   total,
		Page:    req.Page(),
		Size:    req.Size(),
		Results: s.projector.ProjectAll(movies),
	}, nil
}
