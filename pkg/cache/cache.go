package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrCacheMiss = errors.New("cache: key not found")
	ErrLocked    = errors.New("cache: lock held")
)

// Service defines cache operations interface. Values are stored as JSON.
type Service interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, keys ...string) (bool, error)
	TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key string) error
	Close() error
}

// GetOrLoad returns the cached value for key, or calls load and caches its result.
// Cache failures never fail the call; load errors are returned as is.
func GetOrLoad[T any](ctx context.Context, c Service, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	var v T
	if c != nil {
		if err := c.Get(ctx, key, &v); err == nil {
			return v, nil
		}
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}
	if c != nil {
		_ = c.Set(ctx, key, v, ttl)
	}
	return v, nil
}

// WithLock runs fn while holding the named lock. It returns ErrLocked when the
// lock is already taken.
func WithLock(ctx context.Context, c Service, key string, ttl time.Duration, fn func() error) error {
	ok, err := c.TryLock(ctx, key, ttl)
	if err != nil {
		return fmt.Errorf("acquire lock %s: %w", key, err)
	}
	if !ok {
		return ErrLocked
	}
	defer func() { _ = c.Unlock(context.WithoutCancel(ctx), key) }()
	return fn()
}

// Key joins parts into a colon separated cache key.
func Key(parts ...interface{}) string {
	s := make([]string, len(parts))
	for i, p := range parts {
		s[i] = fmt.Sprint(p)
	}
	return strings.Join(s, ":")
}
