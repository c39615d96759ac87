// Package cache is a best-effort key/value shadow of the database. Nothing
// read from it is authoritative and every failure falls back to the store.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
)

// ErrMiss is returned by Get when the key is absent.
var ErrMiss = errors.New("cache miss")

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
	Ping(ctx context.Context) error
}

// Nop never stores anything. It is used when Redis is disabled.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, error) { return nil, ErrMiss }
func (Nop) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (Nop) Delete(context.Context, ...string) error { return nil }
func (Nop) DeleteByPrefix(context.Context, string) error { return nil }
func (Nop) Ping(context.Context) error { return errors.New("cache disabled") }

// GetOrLoad returns the cached value for key, or calls load and populates the
// cache with its result. A failing cache read is retried once before load is
// used. Cache write failures are logged and ignored.
func GetOrLoad[T any](ctx context.Context, c Cache, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	if v, ok := lookup[T](ctx, c, key); ok {
		return v, nil
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}

	data, err := json.Marshal(v)
	if err != nil {
		zap.L().Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return v, nil
	}
	if err = c.Set(ctx, key, data, ttl); err != nil {
		zap.L().Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}

	return v, nil
}

func lookup[T any](ctx context.Context, c Cache, key string) (T, bool) {
	var v T

	data, err := c.Get(ctx, key)
	if err != nil && !errors.Is(err, ErrMiss) {
		data, err = c.Get(ctx, key)
	}
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			zap.L().Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return v, false
	}

	if err = json.Unmarshal(data, &v); err != nil {
		zap.L().Warn("cache decode failed", zap.String("key", key), zap.Error(err))
		return v, false
	}

	return v, true
}

// Invalidate deletes keys and logs instead of failing.
func Invalidate(ctx context.Context, c Cache, keys ...string) {
	if err := c.Delete(ctx, keys...); err != nil {
		zap.L().Warn("cache invalidate failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

// InvalidatePrefix deletes every key under prefix and logs instead of failing.
func InvalidatePrefix(ctx context.Context, c Cache, prefix string) {
	if err := c.DeleteByPrefix(ctx, prefix); err != nil {
		zap.L().Warn("cache invalidate failed", zap.String("prefix", prefix), zap.Error(err))
	}
}
