package accelerator

import (
	"context"

	"github.com/zjrosen/menubar/internal/cachemanager"
	"github.com/zjrosen/menubar/internal/platform"
)

type renderRequest struct {
	accel string
	os    platform.Platform
}

// CachedRenderer memoizes RenderString. Rendering is pure, so entries never
// need to expire.
type CachedRenderer struct {
	rt *cachemanager.ReadThroughCache[string, string, renderRequest]
}

// NewCachedRenderer returns a renderer backed by cache. When skip is true
// every call renders directly.
func NewCachedRenderer(cache cachemanager.CacheManager[string, string], skip bool) *CachedRenderer {
	load := func(_ context.Context, req renderRequest) (string, error) {
		return RenderString(req.accel, req.os), nil
	}
	return &CachedRenderer{
		rt: cachemanager.NewReadThroughCache(cache, load, skip),
	}
}

// Stats reports cache hits and misses since creation.
func (r *CachedRenderer) Stats() cachemanager.Stats { return r.rt.Stats() }

// Render returns the display text of accel on p.
func (r *CachedRenderer) Render(accel string, p platform.Platform) string {
	if accel == "" {
		return ""
	}
	req := renderRequest{accel: accel, os: p}
	text, _ := r.rt.Get(context.Background(), string(p)+"\x1f"+accel, req, cachemanager.NoExpiration)
	return text
}
