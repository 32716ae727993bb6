// Package jobs provides scheduled background tasks for the dispatch system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for courier dispatch.
//
// # Available Jobs
//
// 1. DispatchRetryJob - Re-runs the dispatch sweep on a configurable schedule so ready orders left unassigned get re-offered as couriers free up
// 2. OfferTimeoutJob - Scans every five seconds for delivery offers older than the configured timeout, cancels them and releases their couriers
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(dispatchHandler, expireOffersHandler, "*/2 * * * * *", 90*time.Second, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Dispatch retry job ignores an empty dispatch pool (no ready orders)
// - Offer timeout job logs all errors as they indicate system issues
// - Failed job starts will stop any already running jobs
package jobs
