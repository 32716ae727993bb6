package jobs

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// offerTimeoutScanSpec runs the stale-offer scan every five seconds,
// frequent enough that an unacknowledged offer never blocks an order for
// much longer than the configured timeout.
const offerTimeoutScanSpec = "*/5 * * * * *"

// OfferTimeoutJob cancels delivery offers their couriers never accepted,
// releasing the courier and returning the order to the dispatch pool.
type OfferTimeoutJob struct {
	handler     commands.ExpireStaleOffersCommandHandler
	maxOfferAge time.Duration
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewOfferTimeoutJob creates a job that expires offers older than
// maxOfferAge.
func NewOfferTimeoutJob(handler commands.ExpireStaleOffersCommandHandler, maxOfferAge time.Duration, logger *slog.Logger) *OfferTimeoutJob {
	return &OfferTimeoutJob{
		handler:     handler,
		maxOfferAge: maxOfferAge,
		cron:        cron.New(cron.WithSeconds()),
		logger:      logger.With("component", "offer_timeout_job"),
	}
}

// Start schedules the stale-offer scan.
func (j *OfferTimeoutJob) Start() error {
	_, err := j.cron.AddFunc(offerTimeoutScanSpec, func() {
		ctx := context.Background()

		cmd, err := commands.NewExpireStaleOffersCommand(j.maxOfferAge)
		if err != nil {
			j.logger.ErrorContext(ctx, "Offer timeout job misconfigured", "error", err)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Offer timeout job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Offer timeout job started", "max_offer_age", j.maxOfferAge)
	return nil
}

// Stop stops the offer timeout job.
func (j *OfferTimeoutJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Offer timeout job stopped")
}
