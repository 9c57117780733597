package recommend

import (
	"context"
	"time"

	"github.com/kinoworks/cinedex/internal/domain"
	"github.com/kinoworks/cinedex/internal/domain/search/query"
)

// Repository defines the storage contract for recommendations.
type Repository interface {
	GetByID(ctx context.Context, id string) (domain.Movie, error)
	Search(ctx context.Context, q query.Query) ([]domain.Movie, int64, error)
}

// Cache stores computed recommendation lists. Any Get error counts as a miss.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
