package suggest

import (
	"context"

	"github.com/kinoworks/cinedex/internal/domain"
	"github.com/kinoworks/cinedex/internal/domain/search/query"
)

// Repository defines the storage contract for suggestions.
type Repository interface {
	Search(ctx context.Context, q query.Query) ([]domain.Movie, int64, error)
	Suggest(ctx context.Context, text string, size int) ([]string, error)
}
