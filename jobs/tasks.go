// Package jobs hosts the background task definitions and the Asynq worker
// wiring around them.
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskDirectorySeedWarmup pre-fetches the seed batch so a fresh
	// deployment has a persisted directory before the first request.
	TaskDirectorySeedWarmup = "directory:seed_warmup"
)

// SeedWarmupPayload parametrizes a warmup run.
type SeedWarmupPayload struct {
	Count int `json:"count"`
}

// NewSeedWarmupTask constructs an Asynq task.
func NewSeedWarmupTask(count int) (*asynq.Task, error) {
	data, err := json.Marshal(SeedWarmupPayload{Count: count})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDirectorySeedWarmup, data), nil
}
