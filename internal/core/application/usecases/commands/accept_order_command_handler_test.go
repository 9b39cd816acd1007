package commands_test

import (
	"errors"
	"testing"

	"bookrider/internal/core/application/usecases/commands"
	"bookrider/internal/core/domain/model/order"
	"bookrider/internal/core/ports"
	"bookrider/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAcceptOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate := pendingOrder(t, "user-1")
	cmd, err := commands.NewAcceptOrderCommand(aggregate.ID(), "librarian-1")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate, order.Pending).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	notifier.On("Notify", "user-1", ports.TopicOrders).Once()

	h := commands.NewAcceptOrderCommandHandler(factory, notifier)
	require.NoError(t, h.Handle(ctx, cmd))

	require.Equal(t, order.Accepted, aggregate.Status())
	require.NotNil(t, aggregate.LibrarianID())
	require.Equal(t, "librarian-1", *aggregate.LibrarianID())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestAcceptOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.AcceptOrderCommand{} // not constructed properly

	h := commands.NewAcceptOrderCommandHandler(new(MockOrderUoWFactory), new(MockNotifier))
	require.Error(t, h.Handle(ctx, cmd))
}

func TestAcceptOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	aggregate := pendingOrder(t, "user-1")
	cmd, err := commands.NewAcceptOrderCommand(aggregate.ID(), "librarian-1")
	require.NoError(t, err)

	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewAcceptOrderCommandHandler(factory, new(MockNotifier))
	require.Error(t, h.Handle(ctx, cmd))
}

func TestAcceptOrderCommandHandler_Handle_GetError(t *testing.T) {
	ctx := t.Context()
	aggregate := pendingOrder(t, "user-1")
	cmd, err := commands.NewAcceptOrderCommand(aggregate.ID(), "librarian-1")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).
			Return(nil, errs.NewObjectNotFoundError("orderID", aggregate.ID())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAcceptOrderCommandHandler(factory, new(MockNotifier))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestAcceptOrderCommandHandler_Handle_RepeatAccept(t *testing.T) {
	ctx := t.Context()
	aggregate := acceptedOrder(t, "user-1", "librarian-1")
	cmd, err := commands.NewAcceptOrderCommand(aggregate.ID(), "librarian-2")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAcceptOrderCommandHandler(factory, new(MockNotifier))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrInvalidTransition)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAcceptOrderCommandHandler_Handle_UpdateConflict(t *testing.T) {
	ctx := t.Context()
	aggregate := pendingOrder(t, "user-1")
	cmd, err := commands.NewAcceptOrderCommand(aggregate.ID(), "librarian-1")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate, order.Pending).
			Return(errs.NewConcurrentModificationError("orderID", aggregate.ID())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAcceptOrderCommandHandler(factory, new(MockNotifier))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrConcurrentModification)
}

func TestAcceptOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	aggregate := pendingOrder(t, "user-1")
	cmd, err := commands.NewAcceptOrderCommand(aggregate.ID(), "librarian-1")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate, order.Pending).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)

	h := commands.NewAcceptOrderCommandHandler(factory, notifier)
	require.Error(t, h.Handle(ctx, cmd))
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}
