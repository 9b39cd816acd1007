// Package jobs provides scheduled background tasks for the brokerage.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic maintenance the request path should not do.
//
// # Available Jobs
//
// 1. OverdueRentalSweepJob - Runs hourly to mark active rentals past their return deadline as overdue
// 2. QuotePurgeJob - Runs every 15 minutes to delete quotes whose validity window has closed
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(markOverdueHandler, purgeQuotesHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The sweep runs at "0 0 * * * *" (top of every hour) because rental
// deadlines have day granularity. The purge runs at "0 */15 * * * *";
// expired quotes are already rejected at use, so the purge is purely
// housekeeping.
//
// # Error Handling
//
// Both jobs log failures and wait for the next tick; a failed run is
// retried implicitly because the sweep and purge are idempotent.
// Failed job starts will stop any already running jobs.
package jobs
