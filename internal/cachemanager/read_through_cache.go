package cachemanager

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/zjrosen/menubar/internal/log"
)

// Loader computes the value for a cache miss.
type Loader[V any, I any] func(ctx context.Context, input I) (V, error)

// Stats counts lookups served by a ReadThroughCache.
type Stats struct {
	Hits   uint64
	Misses uint64
}

// ReadThroughCache fills cache misses from a loader.
type ReadThroughCache[K comparable, V any, I any] struct {
	cache  CacheManager[K, V]
	load   Loader[V, I]
	bypass bool

	hits, misses atomic.Uint64
}

// NewReadThroughCache wraps cache with load. With bypass set every Get
// calls load and the cache is never touched.
func NewReadThroughCache[K comparable, V any, I any](cache CacheManager[K, V], load Loader[V, I], bypass bool) *ReadThroughCache[K, V, I] {
	return &ReadThroughCache[K, V, I]{cache: cache, load: load, bypass: bypass}
}

// Get returns the cached value for key, loading it from input on a miss.
// Loader errors are returned and nothing is cached.
func (r *ReadThroughCache[K, V, I]) Get(ctx context.Context, key K, input I, ttl time.Duration) (V, error) {
	if !r.bypass {
		if value, ok := r.cache.Get(ctx, key); ok {
			r.hits.Add(1)
			return value, nil
		}
	}
	r.misses.Add(1)

	value, err := r.load(ctx, input)
	if err != nil {
		log.Debug(log.CatCache, "cache load failed", "key", key, "error", err)
		return value, err
	}
	if !r.bypass {
		r.cache.Set(ctx, key, value, ttl)
	}
	return value, nil
}

// Stats returns the lookup counters. Bypassed lookups count as misses.
func (r *ReadThroughCache[K, V, I]) Stats() Stats {
	return Stats{Hits: r.hits.Load(), Misses: r.misses.Load()}
}
