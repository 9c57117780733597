// Package cache is a byte-level read-through cache backed by Redis via
// rueidis. A nil *Cache is valid and behaves as an always-miss cache, so
// callers never branch on whether caching is enabled.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/rueidis"

	"github.com/kinoworks/cinedex/internal/config"
)

// ErrKeyNotFound signals a cache miss.
var ErrKeyNotFound = errors.New("cache: key not found")

// Cache wraps a Redis connection.
type Cache struct {
	client rueidis.Client
}

// New connects to Redis. Returns (nil, nil) when caching is disabled.
func New(cfg config.CacheConfig) (*Cache, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("cache: addrs is required")
	}
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Password:     cfg.Password,
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("cache: create client: %w", err)
	}
	return &Cache{client: client}, nil
}

// Get retrieves a value by key. A nil cache always misses.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	if c == nil {
		return nil, ErrKeyNotFound
	}
	cmd := c.client.B().Get().Key(key).Build()
	data, err := c.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("cache: get: %w", err)
	}
	return data, nil
}

// SetWithTTL stores a value with an expiration. A nil cache drops the write.
func (c *Cache) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c == nil {
		return nil
	}
	cmd := c.client.B().Set().Key(key).Value(string(value)).Ex(ttl).Build()
	if err := c.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("cache: set: %w", err)
	}
	return nil
}

// Ping checks connectivity.
func (c *Cache) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	cmd := c.client.B().Ping().Build()
	if err := c.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("cache: ping: %w", err)
	}
	return nil
}

// WaitForReady polls Ping until the cache responds or the timeout expires.
func (c *Cache) WaitForReady(ctx context.Context, timeout time.Duration) error {
	if c == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("cache: timeout waiting for readiness: %w", ctx.Err())
		case <-ticker.C:
			if err := c.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// Close shuts down the connection.
func (c *Cache) Close() {
	if c == nil {
		return
	}
	c.client.Close()
}
