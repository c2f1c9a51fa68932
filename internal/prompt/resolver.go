package prompt

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/careerkit/companion/internal/config"
)

// Store is the versioned prompt registry the resolver reads from and
// seeds into. Load returns ErrNotFound when no version is bound to
// the alias and ErrUnavailable when the backend cannot be reached.
// Register always creates a new version and never binds an alias;
// Promote rebinds an alias to an explicit version.
type Store interface {
	Load(ctx context.Context, name, alias string) (*Template, error)
	Register(ctx context.Context, name, body, modelTag string) (*Template, error)
	Promote(ctx context.Context, name string, version int, alias string) error
}

// Resolver turns a logical prompt name into a renderable template,
// degrading through three tiers: registry lookup, file-seeded
// re-registration, raw file content. As long as the bundled file
// exists, Resolve does not fail on registry trouble.
type Resolver struct {
	store       Store
	dir         string
	alias       string
	autoPromote bool
	modelTag    string
}

func NewResolver(store Store, cfg config.PromptsConfig, modelTag string) *Resolver {
	return &Resolver{
		store:       store,
		dir:         cfg.Dir,
		alias:       cfg.Alias,
		autoPromote: cfg.AutoPromote,
		modelTag:    modelTag,
	}
}

// Resolve loads the template bound to name at the configured alias,
// falling back to the bundled file when the registry misses or is
// down. The file content is pushed back into the registry so a fresh
// environment self-heals; if that also fails, the raw file content is
// returned as an unmanaged template.
func (r *Resolver) Resolve(ctx context.Context, name, file string) (*Template, error) {
	tpl, err := r.store.Load(ctx, name, r.alias)
	if err == nil {
		return tpl, nil
	}
	slog.Warn("registry lookup failed, trying file fallback", "prompt", name, "alias", r.alias, "error", err)

	body, ferr := ReadFile(filepath.Join(r.dir, file))
	if ferr != nil {
		slog.Error("prompt fallback file unusable", "prompt", name, "error", ferr)
		return nil, fmt.Errorf("%w: %s", ErrPromptUnavailable, name)
	}

	tpl, rerr := r.reregister(ctx, name, body)
	if rerr == nil {
		return tpl, nil
	}
	slog.Warn("re-registration failed, serving raw file content", "prompt", name, "error", rerr)

	return &Template{Name: name, Body: body}, nil
}

// reregister seeds the registry from file content and retries the
// lookup once. Promotion targets the version just created, not a
// fixed number; with auto-promotion off the retry load is still
// attempted so an operator-managed alias takes effect immediately.
func (r *Resolver) reregister(ctx context.Context, name, body string) (*Template, error) {
	created, err := r.store.Register(ctx, name, body, r.modelTag)
	if err != nil {
		return nil, fmt.Errorf("register %s: %w", name, err)
	}
	slog.Info("registered prompt from file", "prompt", name, "version", created.Version)

	if r.autoPromote {
		if err := r.store.Promote(ctx, name, created.Version, r.alias); err != nil {
			return nil, fmt.Errorf("promote %s v%d to %s: %w", name, created.Version, r.alias, err)
		}
	}

	return r.store.Load(ctx, name, r.alias)
}

// Seed pre-loads the given prompts at startup so the registry is
// populated before the first request. Individual failures are logged
// and skipped.
func (r *Resolver) Seed(ctx context.Context, prompts map[string]string) {
	for name, file := range prompts {
		if _, err := r.Resolve(ctx, name, file); err != nil {
			slog.Warn("failed to seed prompt", "prompt", name, "error", err)
			continue
		}
		slog.Info("seeded prompt", "prompt", name)
	}
}
