// Package movies implements the movie repository over the search backend.
// Queries arrive as backend-agnostic trees and are compiled here; responses
// are decoded leniently into domain movies.
package movies

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/kinoworks/cinedex/internal/domain"
	"github.com/kinoworks/cinedex/internal/domain/search/query"
	"github.com/kinoworks/cinedex/internal/es"
	"github.com/kinoworks/cinedex/internal/logger"
)

// store is the slice of the search client the repository needs.
type store interface {
	Search(ctx context.Context, body map[string]any) (*es.SearchResponse, error)
	Get(ctx context.Context, id string) (json.RawMessage, error)
}

// Repo executes movie queries against the document store.
type Repo struct {
	store store
}

// New creates a Repo over the given store.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Search compiles and executes a query, returning decoded movies and the
// total hit count. Hits that fail to decode are skipped, not fatal.
func (r *Repo) Search(ctx context.Context, q query.Query) ([]domain.Movie, int64, error) {
	res, err := r.store.Search(ctx, Compile(q))
	if err != nil {
		return nil, 0, err
	}
	return r.decodeHits(ctx, res), res.Hits.Total.Value, nil
}

func (r *Repo) decodeHits(ctx context.Context, res *es.SearchResponse) []domain.Movie {
	log := logger.FromContext(ctx)
	out := make([]domain.Movie, 0, len(res.Hits.Hits))
	for _, h := range res.Hits.Hits {
		m, dropped, err := decodeMovie(h.Source, h.ID)
		if err != nil {
			log.Warn("skipping undecodable movie document", zap.String("id", h.ID), zap.Error(err))
			continue
		}
		if dropped > 0 {
			log.Warn("dropped unparseable genre ids", zap.String("id", m.ID), zap.Int("dropped", dropped))
		}
		out = append(out, m)
	}
	return out
}

// GetByID fetches a single movie document.
func (r *Repo) GetByID(ctx context.Context, id string) (domain.Movie, error) {
	raw, err := r.store.Get(ctx, id)
	if err != nil {
		return domain.Movie{}, err
	}
	m, dropped, err := decodeMovie(raw, id)
	if err != nil {
		return domain.Movie{}, err
	}
	if dropped > 0 {
		logger.FromContext(ctx).Warn("dropped unparseable genre ids",
			zap.String("id", m.ID), zap.Int("dropped", dropped))
	}
	return m, nil
}

// GetByIDs fetches multiple movies in one round trip. Missing ids are
// silently absent; result order follows the input ids.
func (r *Repo) GetByIDs(ctx context.Context, ids []string) ([]domain.Movie, error) {
	if len(ids) == 0 {
		return []domain.Movie{}, nil
	}
	q := query.Query{
		Root: query.IDs{Values: ids},
		Size: len(ids),
	}
	found, _, err := r.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Movie, len(found))
	for _, m := range found {
		byID[m.ID] = m
	}
	out := make([]domain.Movie, 0, len(found))
	for _, id := range ids {
		if m, ok := byID[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

const suggestName = "title-suggest"

// Suggest runs a term suggester over title keywords and returns correction
// candidates, deduplicated, in backend order.
func (r *Repo) Suggest(ctx context.Context, text string, size int) ([]string, error) {
	body := map[string]any{
		"size": 0,
		"suggest": map[string]any{
			suggestName: map[string]any{
				"text": text,
				"term": map[string]any{
					"field":         "title.keyword",
					"suggest_mode":  "always",
					"min_doc_freq":  1,
					"prefix_length": 1,
					"max_edits":     2,
					"size":          size,
				},
			},
		},
	}
	res, err := r.store.Search(ctx, body)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var out []string
	for _, entry := range res.Suggest[suggestName] {
		for _, opt := range entry.Options {
			if opt.Text == "" || seen[opt.Text] {
				continue
			}
			seen[opt.Text] = true
			out = append(out, opt.Text)
		}
	}
	return out, nil
}

const ratingStatsAgg = "rating_stats"

// RatingStats returns the corpus-wide [min, max] of the average rating. The
// bounds degrade to [0, 10] when the aggregation yields nothing usable.
func (r *Repo) RatingStats(ctx context.Context) (float64, float64, error) {
	body := map[string]any{
		"size": 0,
		"aggs": map[string]any{
			ratingStatsAgg: map[string]any{
				"stats": map[string]any{"field": "vote_average"},
			},
		},
	}
	res, err := r.store.Search(ctx, body)
	if err != nil {
		return 0, 0, err
	}

	raw, ok := res.Aggregations[ratingStatsAgg]
	if !ok {
		return 0, 10, nil
	}
	var stats struct {
		Min *float64 `json:"min"`
		Max *float64 `json:"max"`
	}
	if err := json.Unmarshal(raw, &stats); err != nil {
		return 0, 0, fmt.Errorf("decode rating stats: %w", err)
	}

	min, max := 0.0, 10.0
	if stats.Min != nil && validRating(*stats.Min) {
		min = *stats.Min
	}
	if stats.Max != nil && validRating(*stats.Max) {
		max = *stats.Max
	}
	return min, max, nil
}

func validRating(v float64) bool {
	return v == v && v >= 0 && v <= 10
}
