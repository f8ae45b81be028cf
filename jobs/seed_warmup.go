package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/userdeck/userdeck/internal/directory"
)

// SeedWarmupJob runs the initial directory load ahead of user traffic. When a
// persisted list already exists the run is a no-op.
type SeedWarmupJob struct {
	Directory *directory.Service
	Logger    *slog.Logger
}

// NewSeedWarmupJob wires dependencies for the warmup handler.
func NewSeedWarmupJob(svc *directory.Service, logger *slog.Logger) *SeedWarmupJob {
	return &SeedWarmupJob{Directory: svc, Logger: logger}
}

// Handle processes seed warmup tasks.
func (j *SeedWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Directory == nil {
		return errors.New("seed warmup: handler not configured")
	}
	var payload SeedWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	users, err := j.Directory.Load(ctx)
	if err != nil {
		if j.Logger != nil {
			j.Logger.Warn("seed warmup failed", slog.Any("error", err))
		}
		return err
	}
	if j.Logger != nil {
		j.Logger.Info("seed warmup complete", slog.Int("users", len(users)))
	}
	return nil
}
