package cache

import (
	"context"
	"encoding/json"
	"time"
)

// LayeredCache implements a two-level cache: a local memory L1 in front of a shared L2.
// Locks always go to L2 so they are visible to every process sharing it.
type LayeredCache struct {
	mem    *MemoryCache
	shared Service
	l1TTL  time.Duration
}

// NewLayeredCache creates a layered cache in front of shared (usually Redis).
func NewLayeredCache(shared Service, opts ...LayeredOption) *LayeredCache {
	cfg := &LayeredConfig{
		MemoryMaxSize: 1000,
		MemoryTTL:     time.Minute,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return &LayeredCache{
		mem:    NewMemoryCache(WithMemoryMaxSize(cfg.MemoryMaxSize)),
		shared: shared,
		l1TTL:  cfg.MemoryTTL,
	}
}

func (lc *LayeredCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	// write-through: shared first, then memory
	if err := lc.shared.Set(ctx, key, value, expiration); err != nil {
		return err
	}
	_ = lc.mem.Set(ctx, key, value, lc.localTTL(expiration))
	return nil
}

func (lc *LayeredCache) Get(ctx context.Context, key string, dest interface{}) error {
	if err := lc.mem.Get(ctx, key, dest); err == nil {
		return nil
	}

	var raw json.RawMessage
	if err := lc.shared.Get(ctx, key, &raw); err != nil {
		return err
	}
	lc.mem.put(key, raw, lc.l1TTL)
	return json.Unmarshal(raw, dest)
}

func (lc *LayeredCache) Delete(ctx context.Context, keys ...string) error {
	_ = lc.mem.Delete(ctx, keys...)
	return lc.shared.Delete(ctx, keys...)
}

func (lc *LayeredCache) Exists(ctx context.Context, keys ...string) (bool, error) {
	return lc.shared.Exists(ctx, keys...)
}

func (lc *LayeredCache) TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return lc.shared.TryLock(ctx, key, ttl)
}

func (lc *LayeredCache) Unlock(ctx context.Context, key string) error {
	return lc.shared.Unlock(ctx, key)
}

func (lc *LayeredCache) localTTL(expiration time.Duration) time.Duration {
	if expiration > 0 && expiration < lc.l1TTL {
		return expiration
	}
	return lc.l1TTL
}

// Close closes both cache layers.
func (lc *LayeredCache) Close() error {
	_ = lc.mem.Close()
	return lc.shared.Close()
}
