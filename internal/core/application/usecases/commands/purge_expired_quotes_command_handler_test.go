package commands_test

import (
	"errors"
	"testing"

	"bookrider/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPurgeExpiredQuotesCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewPurgeExpiredQuotesCommand()

	quotes := new(MockQuoteRepository)
	uow := new(MockPurgeUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("QuoteRepository").Return(quotes).Once(),
		quotes.On("DeleteExpired", mock.Anything, mock.Anything).Return(int64(3), nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPurgeUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPurgeExpiredQuotesCommandHandler(factory)
	purged, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.EqualValues(t, 3, purged)
	quotes.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestPurgeExpiredQuotesCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.PurgeExpiredQuotesCommand{} // not constructed properly

	h := commands.NewPurgeExpiredQuotesCommandHandler(new(MockPurgeUoWFactory))
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestPurgeExpiredQuotesCommandHandler_Handle_DeleteError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewPurgeExpiredQuotesCommand()

	quotes := new(MockQuoteRepository)
	uow := new(MockPurgeUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("QuoteRepository").Return(quotes).Once(),
		quotes.On("DeleteExpired", mock.Anything, mock.Anything).
			Return(int64(0), errors.New("delete error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPurgeUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPurgeExpiredQuotesCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
}
