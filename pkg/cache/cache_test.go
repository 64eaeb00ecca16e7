package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quote struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()
	t.Cleanup(func() { _ = mc.Close() })

	require.NoError(t, mc.Set(ctx, "q", quote{"AAPL", 190.5}, time.Minute))

	var got quote
	require.NoError(t, mc.Get(ctx, "q", &got))
	assert.Equal(t, quote{"AAPL", 190.5}, got)

	ok, err := mc.Exists(ctx, "nope", "q")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, mc.Delete(ctx, "q"))
	assert.ErrorIs(t, mc.Get(ctx, "q", &got), ErrCacheMiss)
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()
	t.Cleanup(func() { _ = mc.Close() })

	require.NoError(t, mc.Set(ctx, "k", 1, time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	var v int
	assert.ErrorIs(t, mc.Get(ctx, "k", &v), ErrCacheMiss)
}

func TestMemoryCacheEvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache(WithMemoryMaxSize(2))
	t.Cleanup(func() { _ = mc.Close() })

	require.NoError(t, mc.Set(ctx, "a", 1, 0))
	time.Sleep(time.Millisecond)
	require.NoError(t, mc.Set(ctx, "b", 2, 0))
	time.Sleep(time.Millisecond)

	var v int
	require.NoError(t, mc.Get(ctx, "a", &v))
	time.Sleep(time.Millisecond)

	require.NoError(t, mc.Set(ctx, "c", 3, 0))
	assert.Equal(t, 2, mc.Len())
	assert.ErrorIs(t, mc.Get(ctx, "b", &v), ErrCacheMiss)
	assert.NoError(t, mc.Get(ctx, "a", &v))
}

func TestTryLock(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()
	t.Cleanup(func() { _ = mc.Close() })

	ok, err := mc.TryLock(ctx, "lock", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = mc.TryLock(ctx, "lock", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, mc.Unlock(ctx, "lock"))
	ok, _ = mc.TryLock(ctx, "lock", time.Minute)
	assert.True(t, ok)
}

func TestWithLock(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()
	t.Cleanup(func() { _ = mc.Close() })

	ran := false
	err := WithLock(ctx, mc, "job", time.Minute, func() error {
		ran = true
		err := WithLock(ctx, mc, "job", time.Minute, func() error { return nil })
		assert.ErrorIs(t, err, ErrLocked)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran)

	ok, _ := mc.Exists(ctx, "job")
	assert.False(t, ok, "lock released")
}

func TestGetOrLoad(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()
	t.Cleanup(func() { _ = mc.Close() })

	calls := 0
	load := func(context.Context) ([]quote, error) {
		calls++
		return []quote{{"MSFT", 410}}, nil
	}

	for i := 0; i < 3; i++ {
		v, err := GetOrLoad(ctx, mc, "list", time.Minute, load)
		require.NoError(t, err)
		assert.Equal(t, "MSFT", v[0].Symbol)
	}
	assert.Equal(t, 1, calls)

	boom := errors.New("boom")
	_, err := GetOrLoad(ctx, mc, "other", time.Minute, func(context.Context) (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)

	v, err := GetOrLoad[int](ctx, nil, "x", time.Minute, func(context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestLayeredCacheReadsThroughSharedLayer(t *testing.T) {
	ctx := context.Background()
	shared := NewMemoryCache()
	lc := NewLayeredCache(shared, WithLayeredMemorySize(10))
	t.Cleanup(func() { _ = lc.Close() })

	require.NoError(t, shared.Set(ctx, "q", quote{"005930", 71000}, time.Minute))

	var got quote
	require.NoError(t, lc.Get(ctx, "q", &got))
	assert.Equal(t, "005930", got.Symbol)

	// served from L1 after the shared copy is gone
	require.NoError(t, shared.Delete(ctx, "q"))
	got = quote{}
	require.NoError(t, lc.Get(ctx, "q", &got))
	assert.Equal(t, 71000.0, got.Price)

	require.NoError(t, lc.Delete(ctx, "q"))
	assert.ErrorIs(t, lc.Get(ctx, "q", &got), ErrCacheMiss)

	ok, err := lc.TryLock(ctx, "l", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	held, _ := shared.Exists(ctx, "l")
	assert.True(t, held, "locks live in the shared layer")
}

func TestKey(t *testing.T) {
	assert.Equal(t, "forecast:AAPL:29", Key("forecast", "AAPL", 29))
}
