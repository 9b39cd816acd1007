package commands

import (
	"context"
	"time"

	"bookrider/internal/core/ports"
)

// MarkOverdueRentalsCommandHandler sweeps active rentals whose return
// deadline has passed and marks them Overdue. Affected users get a
// rentals notification so their view picks up the new status.
type MarkOverdueRentalsCommandHandler struct {
	uowFactory SweepUoWFactory
	notifier   ports.Notifier
	now        func() time.Time
}

// NewMarkOverdueRentalsCommandHandler creates a handler for the sweep.
func NewMarkOverdueRentalsCommandHandler(uowFactory SweepUoWFactory, notifier ports.Notifier) MarkOverdueRentalsCommandHandler {
	return MarkOverdueRentalsCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		now:        time.Now,
	}
}

// Handle marks every overdue rental and returns how many changed.
func (h *MarkOverdueRentalsCommandHandler) Handle(ctx context.Context, cmd MarkOverdueRentalsCommand) (int, error) {
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

	asOf := h.now()
	rentals := uow.RentalRepository()
	overdue, err := rentals.GetActivePastDeadline(ctx, asOf)
	if err != nil {
		return 0, err
	}

	affectedUsers := make(map[string]struct{})
	marked := 0
	for _, aggregate := range overdue {
		if !aggregate.MarkOverdue(asOf) {
			continue
		}
		if err = rentals.Update(ctx, aggregate); err != nil {
			return 0, err
		}
		affectedUsers[aggregate.UserID()] = struct{}{}
		marked++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	for userID := range affectedUsers {
		h.notifier.Notify(userID, ports.TopicRentals)
	}
	return marked, nil
}
