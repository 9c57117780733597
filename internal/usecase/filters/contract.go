package filters

import (
	"context"
	"time"
)

// Repository defines the storage contract for filter metadata.
type Repository interface {
	RatingStats(ctx context.Context) (min, max float64, err error)
}

// Cache stores computed filter options. Any Get error counts as a miss.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
