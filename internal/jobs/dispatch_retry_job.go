package jobs

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DispatchRetryJob periodically re-runs the dispatch sweep so orders that
// could not be assigned on arrival (no eligible courier, lost claim races)
// get another chance as couriers free up.
type DispatchRetryJob struct {
	handler commands.DispatchOrderCommandHandler
	spec    string
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDispatchRetryJob creates a job that runs the dispatch sweep on the
// given cron schedule (with seconds field, e.g. "*/2 * * * * *").
func NewDispatchRetryJob(handler commands.DispatchOrderCommandHandler, spec string, logger *slog.Logger) *DispatchRetryJob {
	return &DispatchRetryJob{
		handler: handler,
		spec:    spec,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "dispatch_retry_job"),
	}
}

// Start schedules the dispatch sweep.
func (j *DispatchRetryJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx := context.Background()
		cmd := commands.NewDispatchOrderCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			// An empty dispatch pool is an idle tick, not a failure
			if !errors.Is(err, commands.ErrNoReadyOrders) {
				j.logger.ErrorContext(ctx, "Dispatch retry job failed", "error", err)
			}
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Dispatch retry job started", "schedule", j.spec)
	return nil
}

// Stop stops the dispatch retry job.
func (j *DispatchRetryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Dispatch retry job stopped")
}
