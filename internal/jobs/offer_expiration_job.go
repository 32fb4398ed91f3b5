package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

const DefaultOfferSweepSchedule = "@every 60s"

// OfferDeactivator is satisfied by commands.DeactivateExpiredOffersCommandHandler.
type OfferDeactivator interface {
	Handle(ctx context.Context, cmd commands.DeactivateExpiredOffersCommand) (int, error)
}

// OfferExpirationJob deactivates offers whose end date has passed.
type OfferExpirationJob struct {
	handler  OfferDeactivator
	schedule string
	cron     *cron.Cron
	now      func() time.Time
	logger   *slog.Logger
}

// NewOfferExpirationJob creates a job that is not yet scheduled. schedule is a
// cron expression with an optional seconds field; empty means
// DefaultOfferSweepSchedule.
func NewOfferExpirationJob(handler OfferDeactivator, schedule string, logger *slog.Logger) *OfferExpirationJob {
	if schedule == "" {
		schedule = DefaultOfferSweepSchedule
	}
	return &OfferExpirationJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		now:      time.Now,
		logger:   logger.With("component", "offer_expiration_job"),
	}
}

// Start schedules the sweep and returns without waiting for the first run.
// An invalid schedule is returned as an error.
func (j *OfferExpirationJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Offer expiration job started", "schedule", j.schedule)
	return nil
}

// RunOnce performs a single sweep and returns how many offers were deactivated.
func (j *OfferExpirationJob) RunOnce(ctx context.Context) int {
	cmd, err := commands.NewDeactivateExpiredOffersCommand(j.now())
	if err != nil {
		j.logger.ErrorContext(ctx, "Offer expiration job failed", "error", err)
		return 0
	}

	count, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Offer expiration job failed", "error", err)
		return 0
	}
	if count > 0 {
		j.logger.InfoContext(ctx, "Expired offers deactivated", "count", count)
	}
	return count
}

// Stop waits for a running sweep to finish.
func (j *OfferExpirationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Offer expiration job stopped")
}
