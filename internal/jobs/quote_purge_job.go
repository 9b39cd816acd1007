package jobs

import (
	"context"
	"log/slog"

	"bookrider/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// QuotePurgeJob deletes quotes whose validity window has closed.
// Expired quotes are rejected at use anyway; the purge keeps the table
// from growing without bound.
type QuotePurgeJob struct {
	handler commands.PurgeExpiredQuotesCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewQuotePurgeJob creates the quote purge job.
func NewQuotePurgeJob(handler commands.PurgeExpiredQuotesCommandHandler, logger *slog.Logger) *QuotePurgeJob {
	return &QuotePurgeJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "quote_purge_job"),
	}
}

// Start schedules the purge every fifteen minutes.
func (j *QuotePurgeJob) Start() error {
	_, err := j.cron.AddFunc("0 */15 * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewPurgeExpiredQuotesCommand()

		purged, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Quote purge failed", "error", err)
			return
		}
		if purged > 0 {
			j.logger.InfoContext(ctx, "Purged expired quotes", "count", purged)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Quote purge job started (running every 15 minutes)")
	return nil
}

// Stop stops the quote purge job.
func (j *QuotePurgeJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Quote purge job stopped")
}
