package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

type CacheHelper[T any] struct {
	Cache *Cache
}

func NewCacheHelper[T any](cache *Cache) *CacheHelper[T] {
	return &CacheHelper[T]{Cache: cache}
}

// Handle reads key into out, calling fn and storing its result on a miss.
// Errors from fn are returned and nothing is cached.
func (c *CacheHelper[T]) Handle(ctx context.Context, key string, out *T, fn func(ctx context.Context) (T, error), expiration time.Duration) error {
	err := c.Cache.Get(ctx, key, out)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrMiss) {
		slog.Warn("cache read failed", "key", key, "error", err)
	}
	value, err := fn(ctx)
	if err != nil {
		return err
	}
	*out = value
	if err = c.Cache.Set(ctx, key, value, expiration); err != nil {
		slog.Warn("cache write failed", "key", key, "error", err)
	}
	return nil
}
