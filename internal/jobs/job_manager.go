package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	dispatchRetryJob *DispatchRetryJob
	offerTimeoutJob  *OfferTimeoutJob
}

// NewJobManager creates a job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	dispatchHandler commands.DispatchOrderCommandHandler,
	expireOffersHandler commands.ExpireStaleOffersCommandHandler,
	dispatchRetrySpec string,
	maxOfferAge time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		dispatchRetryJob: NewDispatchRetryJob(dispatchHandler, dispatchRetrySpec, logger),
		offerTimeoutJob:  NewOfferTimeoutJob(expireOffersHandler, maxOfferAge, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.dispatchRetryJob.Start(); err != nil {
		return fmt.Errorf("failed to start dispatch retry job: %w", err)
	}

	if err := jm.offerTimeoutJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.dispatchRetryJob.Stop()
		return fmt.Errorf("failed to start offer timeout job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.offerTimeoutJob.Stop()
	jm.dispatchRetryJob.Stop()
}
