package jobs

import (
	"context"
	"log/slog"

	"bookrider/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OverdueRentalSweepJob flips active rentals past their return deadline
// to Overdue. Runs hourly; the deadline granularity is days, so a finer
// schedule would add nothing.
type OverdueRentalSweepJob struct {
	handler commands.MarkOverdueRentalsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOverdueRentalSweepJob creates the hourly overdue sweep job.
func NewOverdueRentalSweepJob(handler commands.MarkOverdueRentalsCommandHandler, logger *slog.Logger) *OverdueRentalSweepJob {
	return &OverdueRentalSweepJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "overdue_rental_sweep_job"),
	}
}

// Start schedules the sweep at the top of every hour.
func (j *OverdueRentalSweepJob) Start() error {
	_, err := j.cron.AddFunc("0 0 * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewMarkOverdueRentalsCommand()

		marked, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Overdue rental sweep failed", "error", err)
			return
		}
		if marked > 0 {
			j.logger.InfoContext(ctx, "Marked rentals overdue", "count", marked)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Overdue rental sweep job started (running hourly)")
	return nil
}

// Stop stops the overdue rental sweep job.
func (j *OverdueRentalSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Overdue rental sweep job stopped")
}
