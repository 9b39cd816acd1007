package commands_test

import (
	"errors"
	"testing"
	"time"

	"bookrider/internal/core/application/usecases/commands"
	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/core/domain/model/rental"
	"bookrider/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMarkOverdueRentalsCommandHandler_Handle_MarksAndNotifies(t *testing.T) {
	ctx := t.Context()
	deadline := time.Now().Add(-time.Hour)
	first := activeRental(t, "user-1", kernel.NewUUID(), 1, deadline)
	second := activeRental(t, "user-2", kernel.NewUUID(), 2, deadline)
	cmd := commands.NewMarkOverdueRentalsCommand()

	rentals := new(MockRentalRepository)
	uow := new(MockSweepUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RentalRepository").Return(rentals).Once(),
		rentals.On("GetActivePastDeadline", mock.Anything, mock.Anything).
			Return([]*rental.Rental{first, second}, nil).Once(),
		rentals.On("Update", mock.Anything, first).Return(nil).Once(),
		rentals.On("Update", mock.Anything, second).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSweepUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	notifier.On("Notify", "user-1", ports.TopicRentals).Once()
	notifier.On("Notify", "user-2", ports.TopicRentals).Once()

	h := commands.NewMarkOverdueRentalsCommandHandler(factory, notifier)
	marked, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, 2, marked)

	require.Equal(t, rental.Overdue, first.Status())
	require.Equal(t, rental.Overdue, second.Status())
	rentals.AssertExpectations(t)
	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestMarkOverdueRentalsCommandHandler_Handle_NothingOverdue(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewMarkOverdueRentalsCommand()

	rentals := new(MockRentalRepository)
	uow := new(MockSweepUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RentalRepository").Return(rentals).Once(),
		rentals.On("GetActivePastDeadline", mock.Anything, mock.Anything).
			Return([]*rental.Rental{}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSweepUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)

	h := commands.NewMarkOverdueRentalsCommandHandler(factory, notifier)
	marked, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Zero(t, marked)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestMarkOverdueRentalsCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.MarkOverdueRentalsCommand{} // not constructed properly

	h := commands.NewMarkOverdueRentalsCommandHandler(new(MockSweepUoWFactory), new(MockNotifier))
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestMarkOverdueRentalsCommandHandler_Handle_UpdateError(t *testing.T) {
	ctx := t.Context()
	aggregate := activeRental(t, "user-1", kernel.NewUUID(), 1, time.Now().Add(-time.Hour))
	cmd := commands.NewMarkOverdueRentalsCommand()

	rentals := new(MockRentalRepository)
	uow := new(MockSweepUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RentalRepository").Return(rentals).Once(),
		rentals.On("GetActivePastDeadline", mock.Anything, mock.Anything).
			Return([]*rental.Rental{aggregate}, nil).Once(),
		rentals.On("Update", mock.Anything, aggregate).Return(errors.New("update error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSweepUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)

	h := commands.NewMarkOverdueRentalsCommandHandler(factory, notifier)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}
