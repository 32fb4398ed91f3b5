package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	offerExpirationJob *OfferExpirationJob
}

// NewJobManager creates a job manager. schedule is the offer sweep cron
// expression; empty means DefaultOfferSweepSchedule.
func NewJobManager(
	deactivateOffersHandler OfferDeactivator,
	schedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		offerExpirationJob: NewOfferExpirationJob(deactivateOffersHandler, schedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.offerExpirationJob.Start(); err != nil {
		return fmt.Errorf("failed to start offer expiration job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.offerExpirationJob.Stop()
}
