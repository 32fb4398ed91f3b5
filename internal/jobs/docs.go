// Package jobs provides scheduled background tasks for the fulfillment service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, seconds-enabled parser).
//
// # Available Jobs
//
// OfferExpirationJob runs on OFFER_SWEEP_SCHEDULE (default "@every 60s") and
// deactivates every active offer whose end date has passed.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(deactivateOffersHandler, config.OfferSweepSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed sweep is logged and retried on the next tick. A job that cannot be
// scheduled makes StartAll fail.
package jobs
