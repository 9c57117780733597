package search

import (
	"context"

	"github.com/kinoworks/cinedex/internal/domain"
	"github.com/kinoworks/cinedex/internal/domain/search/query"
)

// Repository defines the storage contract for search operations.
type Repository interface {
	Search(ctx context.Context, q query.Query) ([]domain.Movie, int64, error)
}
