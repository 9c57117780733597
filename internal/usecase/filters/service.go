// Package filters serves the metadata the search UI needs to render its
// filter controls: the genre taxonomy and the observed rating bounds.
package filters

import (
	"context"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/kinoworks/cinedex/internal/domain"
	"github.com/kinoworks/cinedex/internal/logger"
	"github.com/kinoworks/cinedex/internal/metrics"
)

const cacheKey = "filters:options"

// Options is everything a client needs to render search filters.
type Options struct {
	Genres    []domain.GenreOption `json:"genres"`
	RatingMin float64              `json:"ratingMin"`
	RatingMax float64              `json:"ratingMax"`
}

// Service assembles filter options.
type Service struct {
	repo     Repository
	cache    Cache
	cacheTTL time.Duration
}

// New creates a filters service.
func New(repo Repository, c Cache, cacheTTL time.Duration) *Service {
	return &Service{repo: repo, cache: c, cacheTTL: cacheTTL}
}

// Options returns the filter metadata. The rating bounds come from a corpus
// aggregation and degrade to [0, 10] when the backend cannot answer; the
// taxonomy is static, so the endpoint never fails.
func (s *Service) Options(ctx context.Context) Options {
	if data, err := s.cache.Get(ctx, cacheKey); err == nil {
		var cached Options
		if err := json.Unmarshal(data, &cached); err == nil {
			metrics.CacheTotal.WithLabelValues("filters", "hit").Inc()
			return cached
		}
	}
	metrics.CacheTotal.WithLabelValues("filters", "miss").Inc()

	min, max := 0.0, 10.0
	m, x, err := s.repo.RatingStats(ctx)
	if err != nil {
		logger.FromContext(ctx).Warn("rating stats unavailable, using default bounds", zap.Error(err))
	} else {
		min, max = m, x
	}
	if min > max {
		min, max = max, min
	}

	opts := Options{
		Genres:    domain.GenreOptions(),
		RatingMin: min,
		RatingMax: max,
	}

	if data, err := json.Marshal(opts); err == nil {
		if err := s.cache.SetWithTTL(ctx, cacheKey, data, s.cacheTTL); err != nil {
			logger.FromContext(ctx).Warn("caching filter options failed", zap.Error(err))
		}
	}
	return opts
}
