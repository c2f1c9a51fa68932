package registry

import (
	"context"
	"log/slog"
	"time"

	"github.com/careerkit/companion/internal/cache"
	"github.com/careerkit/companion/internal/prompt"
)

// PromptStore is the full registry surface the cache fronts: the
// resolver's Load/Register/Promote plus the listing the API exposes.
type PromptStore interface {
	prompt.Store
	List(ctx context.Context) ([]Info, error)
}

// Cached is a read-through redis cache in front of a prompt store.
// Cache trouble never fails a request; it degrades to the inner
// store. Register leaves the cache alone (a new version binds no
// alias), Promote invalidates the rebinding.
type Cached struct {
	inner PromptStore
	cache *cache.Cache
	ttl   time.Duration
}

func NewCached(inner PromptStore, c *cache.Cache, ttl time.Duration) *Cached {
	return &Cached{inner: inner, cache: c, ttl: ttl}
}

func cacheKey(name, alias string) string {
	return "prompt:" + name + "@" + alias
}

func (c *Cached) Load(ctx context.Context, name, alias string) (*prompt.Template, error) {
	var tpl prompt.Template
	if err := c.cache.Get(ctx, cacheKey(name, alias), &tpl); err == nil {
		return &tpl, nil
	}

	loaded, err := c.inner.Load(ctx, name, alias)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, cacheKey(name, alias), loaded, c.ttl); err != nil {
		slog.Debug("prompt cache set failed", "prompt", name, "error", err)
	}
	return loaded, nil
}

func (c *Cached) Register(ctx context.Context, name, body, modelTag string) (*prompt.Template, error) {
	return c.inner.Register(ctx, name, body, modelTag)
}

func (c *Cached) Promote(ctx context.Context, name string, version int, alias string) error {
	if err := c.inner.Promote(ctx, name, version, alias); err != nil {
		return err
	}
	if err := c.cache.Delete(ctx, cacheKey(name, alias)); err != nil {
		slog.Debug("prompt cache invalidation failed", "prompt", name, "error", err)
	}
	return nil
}

// List is a listing surface, not a hot path; it always goes to the
// inner store.
func (c *Cached) List(ctx context.Context) ([]Info, error) {
	return c.inner.List(ctx)
}
