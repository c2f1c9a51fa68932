package main

import (
	"context"
	"log/slog"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"github.com/careerkit/companion/internal/config"
	"github.com/careerkit/companion/internal/database"
	"github.com/careerkit/companion/internal/queue"
	"github.com/careerkit/companion/internal/queue/workers"
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

	db, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		slog.Error("database unavailable, worker cannot persist records", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db, cfg.Database.MigrationsPath); err != nil {
		slog.Warn("migrations failed", "error", err)
	}

	var artifacts *track.ArtifactStore
	if cfg.Track.ArtifactBucket != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Secrets.AWSRegion))
		if err != nil {
			slog.Warn("aws config unavailable, running without artifact storage", "error", err)
		} else {
			artifacts = track.NewArtifactStore(s3.NewFromConfig(awsCfg), cfg.Track.ArtifactBucket)
		}
	}

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	registry := queue.NewHandlersRegistry()

	interactionWorker := workers.NewInteractionWorker(track.NewStore(db), artifacts)
	registry.Register(queue.TypeInteractionRecord, asynq.HandlerFunc(interactionWorker.ProcessTask))

	slog.Info("starting worker", "concurrency", 10)
	if err := srv.Run(registry.Mux()); err != nil {
		slog.Error("worker error", "error", err)
		os.Exit(1)
	}
}
