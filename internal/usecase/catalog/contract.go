package catalog

import (
	"context"

	"github.com/kinoworks/cinedex/internal/domain"
	"github.com/kinoworks/cinedex/internal/domain/search/query"
	"github.com/kinoworks/cinedex/internal/domain/search/request"
	"github.com/kinoworks/cinedex/internal/domain/search/result"
)

// Repository defines the storage contract for catalog lookups.
type Repository interface {
	GetByID(ctx context.Context, id string) (domain.Movie, error)
	GetByIDs(ctx context.Context, ids []string) ([]domain.Movie, error)
	Search(ctx context.Context, q query.Query) ([]domain.Movie, int64, error)
}

// Searcher runs validated discovery searches. The curated listings are thin
// presets over the same path, so they inherit its gating and ranking.
type Searcher interface {
	Search(ctx context.Context, p request.Params) (result.Page, error)
}
