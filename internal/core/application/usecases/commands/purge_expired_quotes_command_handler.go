package commands

import (
	"context"
	"time"
)

// PurgeExpiredQuotesCommandHandler deletes quotes past their validity
// window, options included.
type PurgeExpiredQuotesCommandHandler struct {
	uowFactory PurgeUoWFactory
	now        func() time.Time
}

// NewPurgeExpiredQuotesCommandHandler creates a handler for the purge.
func NewPurgeExpiredQuotesCommandHandler(uowFactory PurgeUoWFactory) PurgeExpiredQuotesCommandHandler {
	return PurgeExpiredQuotesCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle deletes expired quotes and returns how many were removed.
func (h *PurgeExpiredQuotesCommandHandler) Handle(ctx context.Context, cmd PurgeExpiredQuotesCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	purged, err := uow.QuoteRepository().DeleteExpired(ctx, h.now())
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return purged, nil
}
