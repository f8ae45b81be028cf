package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/userdeck/userdeck/internal/app"
	"github.com/userdeck/userdeck/internal/directory"
	"github.com/userdeck/userdeck/internal/platform/cache"
	"github.com/userdeck/userdeck/internal/platform/db"
	"github.com/userdeck/userdeck/internal/randomuser"
	"github.com/userdeck/userdeck/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	var repo directory.RepositoryPort = directory.NewRedisRepository(redisClient)
	if cfg.StoreDriver == "postgres" {
		pool, err := db.New(ctx, cfg.PGDSN)
		if err != nil {
			logger.Error("connect postgres", slog.Any("error", err))
			os.Exit(1)
		}
		defer pool.Close()
		repo = directory.NewPostgresRepository(pool)
	}

	seedClient := randomuser.NewClient(cfg.SeedURL, cfg.SeedTimeout)
	directoryService := directory.NewService(repo, seedClient, cfg.SeedCount, logger)
	warmupJob := jobs.NewSeedWarmupJob(directoryService, logger)

	warmupTask, err := jobs.NewSeedWarmupTask(cfg.SeedCount)
	if err != nil {
		logger.Error("build warmup task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskDirectorySeedWarmup, Handler: warmupJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			// A failed fetch is not retried; the next scheduled run tries again.
			{Spec: "@every 6h", Task: warmupTask, Options: []asynq.Option{asynq.MaxRetry(0)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
