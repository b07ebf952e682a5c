package cron

import (
	"context"
	"fmt"
	"log"
	"time"

	"bookingflow/models"
	"bookingflow/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Warmer loads one availability query into the cache.
type Warmer interface {
	Warm(ctx context.Context, req models.AvailabilityRequest) error
}

// InitPrefetchWorker runs the availability pre-fetch worker in background.
// The returned server is shut down by the caller.
func InitPrefetchWorker(redisOpts asynq.RedisClientOpt, warmer Warmer, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 3,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeAvailabilityPrefetch, handlePrefetchTask(warmer, logger))

	// Start Redis health monitor
	go monitorRedisConnection(redisOpts, logger)

	// Start async worker with retry logic
	go func() {
		logger.Info("[PrefetchWorker] starting async worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("[PrefetchWorker] failed to start worker",
					zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))

				if attempts == maxAttempts {
					log.Fatal("[PrefetchWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()

	return srv
}

func handlePrefetchTask(warmer Warmer, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParsePrefetchPayload(task)
		if err != nil {
			logger.Warn("[PrefetchHandler] dropping task", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		req := models.AvailabilityRequest{
			Identifier: models.Identifier{Domain: p.Domain, ClientEmail: p.ClientEmail},
			Date:       p.Date,
			ResourceID: p.ResourceID,
		}
		if err := warmer.Warm(ctx, req); err != nil {
			logger.Warn("[PrefetchHandler] pre-fetch failed",
				zap.String("identifier", req.Identifier.Key()), zap.String("date", p.Date), zap.Error(err))
			return err
		}
		logger.Debug("[PrefetchHandler] availability warmed",
			zap.String("identifier", req.Identifier.Key()), zap.String("date", p.Date))
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection(redisOpts asynq.RedisClientOpt, logger *zap.Logger) {
	client := redis.NewClient(&redis.Options{
		Addr:     redisOpts.Addr,
		Password: redisOpts.Password,
		DB:       redisOpts.DB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("[PrefetchWorker] Redis connection lost", zap.Error(err))
		}
		time.Sleep(10 * time.Second)
	}
}
