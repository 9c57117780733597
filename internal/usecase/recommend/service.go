// Package recommend implements two-stage similar-title recommendations:
// a similarity query first, then a same-genre popularity fallback that tops
// the list up to the target count. The operation never fails outward; every
// stage degrades to fewer results.
package recommend

import (
	"context"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/kinoworks/cinedex/internal/config"
	"github.com/kinoworks/cinedex/internal/domain"
	"github.com/kinoworks/cinedex/internal/domain/search/query"
	"github.com/kinoworks/cinedex/internal/logger"
	"github.com/kinoworks/cinedex/internal/metrics"
)

// Service computes similar-title recommendations.
type Service struct {
	repo       Repository
	cache      Cache
	projector  domain.Projector
	target     int
	titleBoost float64
	mltFields  []string
	cacheTTL   time.Duration
}

// New creates a recommendation service.
func New(repo Repository, c Cache, projector domain.Projector, search config.SearchConfig, cacheTTL time.Duration) *Service {
	return &Service{
		repo:       repo,
		cache:      c,
		projector:  projector,
		target:     search.RecommendTarget,
		titleBoost: search.TitleMatchBoost,
		mltFields:  mltFieldSpecs(search.MLTFieldBoosts),
		cacheTTL:   cacheTTL,
	}
}

// Recommend returns up to the target number of titles similar to the given
// movie. It never returns an error: backend failures are logged, counted, and
// degrade to a shorter (possibly empty) list.
func (s *Service) Recommend(ctx context.Context, id string) []domain.Summary {
	log := logger.FromContext(ctx)
	key := "rec:" + id

	if data, err := s.cache.Get(ctx, key); err == nil {
		var cached []domain.Summary
		if err := json.Unmarshal(data, &cached); err == nil {
			metrics.CacheTotal.WithLabelValues("recommend", "hit").Inc()
			return cached
		}
	}
	metrics.CacheTotal.WithLabelValues("recommend", "miss").Inc()

	src, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Warn("recommendation source unavailable", zap.String("id", id), zap.Error(err))
		metrics.RecommendStageDegradedTotal.WithLabelValues("similarity").Inc()
		return []domain.Summary{}
	}

	picked := s.runStage(ctx, s.similarityQuery(src, s.target), "similarity")
	picked = dedupe(picked, src.ID, s.target)

	if deficit := s.target - len(picked); deficit > 0 && len(src.GenreIDs) > 0 {
		exclude := make([]string, 0, len(picked)+1)
		exclude = append(exclude, src.ID)
		for _, m := range picked {
			exclude = append(exclude, m.ID)
		}
		filled := s.runStage(ctx, s.fallbackQuery(src, exclude, deficit), "genre_fallback")
		picked = append(picked, dedupe(filled, src.ID, deficit)...)
		picked = dedupe(picked, src.ID, s.target)
	}

	out := s.projector.ProjectAll(picked)

	if data, err := json.Marshal(out); err == nil {
		if err := s.cache.SetWithTTL(ctx, key, data, s.cacheTTL); err != nil {
			log.Warn("caching recommendations failed", zap.String("id", id), zap.Error(err))
		}
	}
	return out
}

// runStage executes one stage, degrading a backend failure to zero results.
func (s *Service) runStage(ctx context.Context, q query.Query, stage string) []domain.Movie {
	movies, _, err := s.repo.Search(ctx, q)
	if err != nil {
		logger.FromContext(ctx).Warn("recommendation stage degraded",
			zap.String("stage", stage), zap.Error(err))
		metrics.RecommendStageDegradedTotal.WithLabelValues(stage).Inc()
		return nil
	}
	return movies
}

// dedupe drops the source id and duplicate ids, preserving order, capped at
// limit.
func dedupe(in []domain.Movie, sourceID string, limit int) []domain.Movie {
	seen := map[string]bool{sourceID: true}
	out := make([]domain.Movie, 0, len(in))
	for _, m := range in {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		out = append(out, m)
		if len(out) == limit {
			break
		}
	}
	return out
}
