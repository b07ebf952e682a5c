package booking

import (
	"context"
	"sync"
	"time"

	"bookingflow/models"
	"bookingflow/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultPrefetchDays = 6
	prefetchParallelism = 3
)

// PrefetchDates lists the days days after from, in order. A malformed from
// yields nothing.
func PrefetchDates(from string, days int) []string {
	start, err := time.Parse(dateLayout, from)
	if err != nil || days <= 0 {
		return nil
	}
	dates := make([]string, 0, days)
	for i := 1; i <= days; i++ {
		dates = append(dates, start.AddDate(0, 0, i).Format(dateLayout))
	}
	return dates
}

// InlinePrefetcher warms the cache from goroutines of this process.
type InlinePrefetcher struct {
	availability *AvailabilityService
	days         int
	logger       *zap.Logger
	wg           sync.WaitGroup
}

func NewInlinePrefetcher(availability *AvailabilityService, days int, logger *zap.Logger) *InlinePrefetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if days <= 0 {
		days = DefaultPrefetchDays
	}
	return &InlinePrefetcher{availability: availability, days: days, logger: logger}
}

// Prefetch returns immediately. The work outlives the request context.
func (p *InlinePrefetcher) Prefetch(ctx context.Context, id models.Identifier, fromDate, resourceID string) {
	ctx = context.WithoutCancel(ctx)
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.Run(ctx, id, fromDate, resourceID)
	}()
}

// Run warms every following day and waits for all of them. Failures are
// logged and dropped.
func (p *InlinePrefetcher) Run(ctx context.Context, id models.Identifier, fromDate, resourceID string) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(prefetchParallelism)

	for _, date := range PrefetchDates(fromDate, p.days) {
		req := models.AvailabilityRequest{Identifier: id, Date: date, ResourceID: resourceID}
		g.Go(func() error {
			if err := p.availability.Warm(ctx, req); err != nil {
				p.logger.Debug("availability prefetch failed",
					zap.String("key", AvailabilityKey(req.Identifier, req.Date, req.ResourceID)),
					zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()
}

// Wait blocks until every started prefetch has finished.
func (p *InlinePrefetcher) Wait() {
	p.wg.Wait()
}

// TaskEnqueuer is the part of *asynq.Client the queue prefetcher needs.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueuePrefetcher hands each day to the asynq worker. Enqueueing happens
// off the caller's goroutine.
type QueuePrefetcher struct {
	queue     TaskEnqueuer
	days      int
	uniqueFor time.Duration
	logger    *zap.Logger
	wg        sync.WaitGroup
}

// NewQueuePrefetcher returns a QueuePrefetcher. uniqueFor suppresses repeat
// tasks for the same query; the availability TTL is a good value.
func NewQueuePrefetcher(queue TaskEnqueuer, days int, uniqueFor time.Duration, logger *zap.Logger) *QueuePrefetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if days <= 0 {
		days = DefaultPrefetchDays
	}
	return &QueuePrefetcher{queue: queue, days: days, uniqueFor: uniqueFor, logger: logger}
}

// Prefetch returns immediately; a slow or unreachable Redis only delays the
// background enqueue.
func (p *QueuePrefetcher) Prefetch(ctx context.Context, id models.Identifier, fromDate, resourceID string) {
	ctx = context.WithoutCancel(ctx)
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.enqueue(ctx, id, fromDate, resourceID)
	}()
}

// Wait blocks until every started enqueue has finished.
func (p *QueuePrefetcher) Wait() {
	p.wg.Wait()
}

func (p *QueuePrefetcher) enqueue(ctx context.Context, id models.Identifier, fromDate, resourceID string) {
	for _, date := range PrefetchDates(fromDate, p.days) {
		task, opts, err := tasks.NewPrefetchTask(models.PrefetchPayload{
			Domain:      id.Domain,
			ClientEmail: id.ClientEmail,
			Date:        date,
			ResourceID:  resourceID,
		}, p.uniqueFor)
		if err != nil {
			p.logger.Warn("build prefetch task", zap.Error(err))
			continue
		}
		if _, err := p.queue.EnqueueContext(ctx, task, opts...); err != nil {
			p.logger.Debug("enqueue prefetch task", zap.String("date", date), zap.Error(err))
		}
	}
}
