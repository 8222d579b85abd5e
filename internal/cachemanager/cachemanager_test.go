package cachemanager

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInMemoryCacheManager_SetGet(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval)

	_, ok := c.Get(ctx, "missing")
	require.False(t, ok)

	c.Set(ctx, "k", "v", DefaultExpiration)
	v, ok := c.Get(ctx, "k")
	require.True(t, ok)
	require.Equal(t, "v", v)
	require.Equal(t, 1, c.Len())
}

func TestInMemoryCacheManager_DeleteAndFlush(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCacheManager[string, int]("test", DefaultExpiration, DefaultCleanupInterval)
	c.Set(ctx, "a", 1, NoExpiration)
	c.Set(ctx, "b", 2, NoExpiration)

	require.NoError(t, c.Delete(ctx, "a"))
	_, ok := c.Get(ctx, "a")
	require.False(t, ok)

	require.NoError(t, c.Flush(ctx))
	require.Equal(t, 0, c.Len())
}

func TestReadThroughCache_LoadsOnce(t *testing.T) {
	ctx := context.Background()
	calls := 0
	rt := NewReadThroughCache[string, string, string](
		NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval),
		func(_ context.Context, in string) (string, error) {
			calls++
			return in + "!", nil
		},
		false,
	)

	for range 3 {
		v, err := rt.Get(ctx, "k", "hi", DefaultExpiration)
		require.NoError(t, err)
		require.Equal(t, "hi!", v)
	}
	require.Equal(t, 1, calls)
	require.Equal(t, Stats{Hits: 2, Misses: 1}, rt.Stats())
}

func TestReadThroughCache_Skip(t *testing.T) {
	ctx := context.Background()
	calls := 0
	rt := NewReadThroughCache[string, int, int](
		NewInMemoryCacheManager[string, int]("test", DefaultExpiration, DefaultCleanupInterval),
		func(_ context.Context, in int) (int, error) {
			calls++
			return in, nil
		},
		true,
	)
	_, _ = rt.Get(ctx, "k", 1, DefaultExpiration)
	_, _ = rt.Get(ctx, "k", 1, DefaultExpiration)
	require.Equal(t, 2, calls)
	require.Equal(t, Stats{Misses: 2}, rt.Stats())
}

func TestReadThroughCache_ErrorNotCached(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	cache := NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval)
	rt := NewReadThroughCache[string, string, string](cache,
		func(context.Context, string) (string, error) { return "", boom }, false)

	_, err := rt.Get(ctx, "k", "x", DefaultExpiration)
	require.ErrorIs(t, err, boom)
	require.Equal(t, 0, cache.Len())
}
