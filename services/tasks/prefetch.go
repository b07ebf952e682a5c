package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"bookingflow/models"

	"github.com/hibiken/asynq"
)

const TypeAvailabilityPrefetch = "availability:prefetch"

// NewPrefetchTask builds a task warming one availability query. Duplicate
// tasks for the same query are suppressed for uniqueFor.
func NewPrefetchTask(payload models.PrefetchPayload, uniqueFor time.Duration) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeAvailabilityPrefetch, b)
	opts := []asynq.Option{asynq.MaxRetry(1), asynq.Timeout(30 * time.Second)}
	if uniqueFor > 0 {
		opts = append(opts, asynq.Unique(uniqueFor))
	}
	return task, opts, nil
}

// ParsePrefetchPayload decodes the payload of a prefetch task.
func ParsePrefetchPayload(task *asynq.Task) (models.PrefetchPayload, error) {
	var p models.PrefetchPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid prefetch payload: %w", err)
	}
	if p.Date == "" {
		return p, fmt.Errorf("invalid prefetch payload: missing date")
	}
	return p, nil
}
