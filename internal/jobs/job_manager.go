package jobs

import (
	"fmt"
	"log/slog"

	"bookrider/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	overdueRentalSweepJob *OverdueRentalSweepJob
	quotePurgeJob         *QuotePurgeJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	markOverdueHandler commands.MarkOverdueRentalsCommandHandler,
	purgeQuotesHandler commands.PurgeExpiredQuotesCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		overdueRentalSweepJob: NewOverdueRentalSweepJob(markOverdueHandler, logger),
		quotePurgeJob:         NewQuotePurgeJob(purgeQuotesHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.overdueRentalSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start overdue rental sweep job: %w", err)
	}

	if err := jm.quotePurgeJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.overdueRentalSweepJob.Stop()
		return fmt.Errorf("failed to start quote purge job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.quotePurgeJob.Stop()
	jm.overdueRentalSweepJob.Stop()
}
