package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/careerkit/companion/internal/api"
	"github.com/careerkit/companion/internal/cache"
	"github.com/careerkit/companion/internal/config"
	"github.com/careerkit/companion/internal/database"
	"github.com/careerkit/companion/internal/guidance"
	"github.com/careerkit/companion/internal/llm"
	"github.com/careerkit/companion/internal/prompt"
	"github.com/careerkit/companion/internal/queue"
	"github.com/careerkit/companion/internal/registry"
	"github.com/careerkit/companion/internal/secrets"
	"github.com/careerkit/companion/internal/telemetry"
	"github.com/careerkit/companion/internal/track"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Registry backend is optional: prompt resolution degrades to
	// bundled files without it.
	db, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		slog.Warn("database unavailable, running without registry backend", "error", err)
		db = nil
	} else {
		defer db.Close()

		if err := database.RunMigrations(ctx, db, cfg.Database.MigrationsPath); err != nil {
			slog.Warn("migrations failed", "error", err)
		}
	}

	// Redis is optional: template cache and metric counters.
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Warn("redis unavailable, running without cache", "error", err)
		rdb.Close()
		rdb = nil
	} else {
		defer rdb.Close()
	}

	resolveAPIKeys(ctx, cfg)

	gateway, err := llm.NewGateway(ctx, cfg.LLM)
	if err != nil {
		slog.Error("failed to initialize model gateway", "error", err)
		os.Exit(1)
	}

	store := registry.NewStore(db, cfg.Track.CloudProvider)
	cached := registry.NewCached(store, cache.NewCache(rdb), cfg.Prompts.CacheTTL)
	resolver := prompt.NewResolver(cached, cfg.Prompts, cfg.LLM.DefaultModel)

	queueClient := queue.NewClient(cfg.Redis)
	defer queueClient.Close()
	recorder := track.NewRecorder(queueClient, track.Tags{
		Environment:   cfg.Track.Environment,
		CloudProvider: cfg.Track.CloudProvider,
		Service:       cfg.Track.Service,
	})

	tel := telemetry.New(cache.NewCache(rdb))

	svc := guidance.NewService(resolver, gateway, recorder, tel, cached)
	svc.SeedPrompts(ctx)

	router := api.NewRouter(api.Deps{
		DB:       db,
		Redis:    rdb,
		Cfg:      cfg,
		Guidance: svc,
		Usage:    track.NewStore(db),
	})
	handler := router.Setup()

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("starting API server", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
	}
	slog.Info("server stopped")
}

// resolveAPIKeys fills in provider keys from the secret store when
// the environment did not supply them.
func resolveAPIKeys(ctx context.Context, cfg *config.Config) {
	sec := secrets.NewStore(cfg.Secrets)

	lookups := []struct {
		name string
		dest *string
	}{
		{"gemini-api-key", &cfg.LLM.GeminiKey},
		{"openai-api-key", &cfg.LLM.OpenAIKey},
		{"anthropic-api-key", &cfg.LLM.AnthropicKey},
	}

	for _, l := range lookups {
		if *l.dest != "" {
			continue
		}
		v, err := sec.Get(ctx, l.name)
		if err != nil {
			slog.Debug("secret not resolved", "secret", l.name, "error", err)
			continue
		}
		*l.dest = v
	}
}
