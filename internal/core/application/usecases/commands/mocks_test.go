package commands_test

import (
	"context"
	"time"

	"bookrider/internal/core/application/usecases/commands"
	"bookrider/internal/core/domain/model/billing"
	"bookrider/internal/core/domain/model/cart"
	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/core/domain/model/library"
	"bookrider/internal/core/domain/model/navigation"
	"bookrider/internal/core/domain/model/order"
	"bookrider/internal/core/domain/model/quote"
	"bookrider/internal/core/domain/model/rental"
	"bookrider/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order, expectedStatus order.Status) error {
	args := m.Called(ctx, aggregate, expectedStatus)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if aggregate := args.Get(0); aggregate != nil {
		return aggregate.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockCartRepository struct{ mock.Mock }

func (m *MockCartRepository) Add(ctx context.Context, aggregate *cart.ShoppingCart) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockCartRepository) Update(ctx context.Context, aggregate *cart.ShoppingCart) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockCartRepository) GetByUserID(ctx context.Context, userID string) (*cart.ShoppingCart, error) {
	args := m.Called(ctx, userID)
	if aggregate := args.Get(0); aggregate != nil {
		return aggregate.(*cart.ShoppingCart), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockRentalRepository struct{ mock.Mock }

func (m *MockRentalRepository) Add(ctx context.Context, aggregate *rental.Rental) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockRentalRepository) Update(ctx context.Context, aggregate *rental.Rental) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockRentalRepository) Get(ctx context.Context, id kernel.UUID) (*rental.Rental, error) {
	args := m.Called(ctx, id)
	if aggregate := args.Get(0); aggregate != nil {
		return aggregate.(*rental.Rental), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRentalRepository) GetByIDs(ctx context.Context, ids []kernel.UUID) ([]*rental.Rental, error) {
	args := m.Called(ctx, ids)
	if aggregates := args.Get(0); aggregates != nil {
		return aggregates.([]*rental.Rental), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRentalRepository) GetActivePastDeadline(ctx context.Context, asOf time.Time) ([]*rental.Rental, error) {
	args := m.Called(ctx, asOf)
	if aggregates := args.Get(0); aggregates != nil {
		return aggregates.([]*rental.Rental), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockRentalReturnRepository struct{ mock.Mock }

func (m *MockRentalReturnRepository) Add(ctx context.Context, aggregate *rental.RentalReturn) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockRentalReturnRepository) Update(ctx context.Context, aggregate *rental.RentalReturn) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockRentalReturnRepository) Get(ctx context.Context, id kernel.UUID) (*rental.RentalReturn, error) {
	args := m.Called(ctx, id)
	if aggregate := args.Get(0); aggregate != nil {
		return aggregate.(*rental.RentalReturn), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockQuoteRepository struct{ mock.Mock }

func (m *MockQuoteRepository) Add(ctx context.Context, aggregate *quote.Quote) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockQuoteRepository) Get(ctx context.Context, id kernel.UUID) (*quote.Quote, error) {
	args := m.Called(ctx, id)
	if aggregate := args.Get(0); aggregate != nil {
		return aggregate.(*quote.Quote), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockQuoteRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

type MockLibraryRepository struct{ mock.Mock }

func (m *MockLibraryRepository) Get(ctx context.Context, id kernel.UUID) (*library.Library, error) {
	args := m.Called(ctx, id)
	if aggregate := args.Get(0); aggregate != nil {
		return aggregate.(*library.Library), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLibraryRepository) GetCandidatesByBook(
	ctx context.Context, bookID kernel.UUID, near kernel.Coordinate, limit int,
) ([]*library.Library, error) {
	args := m.Called(ctx, bookID, near, limit)
	if aggregates := args.Get(0); aggregates != nil {
		return aggregates.([]*library.Library), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLibraryRepository) Update(ctx context.Context, aggregate *library.Library) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

type MockBookRepository struct{ mock.Mock }

func (m *MockBookRepository) Get(ctx context.Context, id kernel.UUID) (*library.Book, error) {
	args := m.Called(ctx, id)
	if book := args.Get(0); book != nil {
		return book.(*library.Book), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockTransactionRepository struct{ mock.Mock }

func (m *MockTransactionRepository) Add(ctx context.Context, aggregate *billing.Transaction) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetAllByUserID(ctx context.Context, userID string) ([]*billing.Transaction, error) {
	args := m.Called(ctx, userID)
	if aggregates := args.Get(0); aggregates != nil {
		return aggregates.([]*billing.Transaction), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockGeocoder struct{ mock.Mock }

func (m *MockGeocoder) Resolve(ctx context.Context, street, city, postalCode string) (kernel.Coordinate, error) {
	args := m.Called(ctx, street, city, postalCode)
	return args.Get(0).(kernel.Coordinate), args.Error(1)
}

type MockRouter struct{ mock.Mock }

func (m *MockRouter) Route(
	ctx context.Context, start, end kernel.Coordinate, profile navigation.TransportProfile,
) (navigation.NavigationResult, error) {
	args := m.Called(ctx, start, end, profile)
	return args.Get(0).(navigation.NavigationResult), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(userID, topic string) {
	m.Called(userID, topic)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockOrderUoW) RentalRepository() ports.RentalRepository {
	args := m.Called()
	return args.Get(0).(ports.RentalRepository)
}

func (m *MockOrderUoW) TransactionRepository() ports.TransactionRepository {
	args := m.Called()
	return args.Get(0).(ports.TransactionRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCartUoW struct{ mock.Mock }

func (m *MockCartUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCartUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCartUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCartUoW) CartRepository() ports.CartRepository {
	args := m.Called()
	return args.Get(0).(ports.CartRepository)
}

func (m *MockCartUoW) QuoteRepository() ports.QuoteRepository {
	args := m.Called()
	return args.Get(0).(ports.QuoteRepository)
}

func (m *MockCartUoW) LibraryRepository() ports.LibraryRepository {
	args := m.Called()
	return args.Get(0).(ports.LibraryRepository)
}

func (m *MockCartUoW) BookRepository() ports.BookRepository {
	args := m.Called()
	return args.Get(0).(ports.BookRepository)
}

type MockCartUoWFactory struct{ mock.Mock }

func (m *MockCartUoWFactory) Create() commands.CartUoW {
	args := m.Called()
	return args.Get(0).(commands.CartUoW)
}

type MockQuoteUoWFactory struct{ mock.Mock }

func (m *MockQuoteUoWFactory) Create() commands.QuoteUoW {
	args := m.Called()
	return args.Get(0).(commands.QuoteUoW)
}

type MockCheckoutUoW struct{ mock.Mock }

func (m *MockCheckoutUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCheckoutUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCheckoutUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCheckoutUoW) CartRepository() ports.CartRepository {
	args := m.Called()
	return args.Get(0).(ports.CartRepository)
}

func (m *MockCheckoutUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockCheckoutUoW) LibraryRepository() ports.LibraryRepository {
	args := m.Called()
	return args.Get(0).(ports.LibraryRepository)
}

func (m *MockCheckoutUoW) BookRepository() ports.BookRepository {
	args := m.Called()
	return args.Get(0).(ports.BookRepository)
}

func (m *MockCheckoutUoW) TransactionRepository() ports.TransactionRepository {
	args := m.Called()
	return args.Get(0).(ports.TransactionRepository)
}

type MockCheckoutUoWFactory struct{ mock.Mock }

func (m *MockCheckoutUoWFactory) Create() commands.CheckoutUoW {
	args := m.Called()
	return args.Get(0).(commands.CheckoutUoW)
}

type MockReturnUoW struct{ mock.Mock }

func (m *MockReturnUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockReturnUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockReturnUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockReturnUoW) RentalRepository() ports.RentalRepository {
	args := m.Called()
	return args.Get(0).(ports.RentalRepository)
}

func (m *MockReturnUoW) RentalReturnRepository() ports.RentalReturnRepository {
	args := m.Called()
	return args.Get(0).(ports.RentalReturnRepository)
}

func (m *MockReturnUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockReturnUoW) CartRepository() ports.CartRepository {
	args := m.Called()
	return args.Get(0).(ports.CartRepository)
}

func (m *MockReturnUoW) LibraryRepository() ports.LibraryRepository {
	args := m.Called()
	return args.Get(0).(ports.LibraryRepository)
}

func (m *MockReturnUoW) BookRepository() ports.BookRepository {
	args := m.Called()
	return args.Get(0).(ports.BookRepository)
}

func (m *MockReturnUoW) TransactionRepository() ports.TransactionRepository {
	args := m.Called()
	return args.Get(0).(ports.TransactionRepository)
}

type MockReturnUoWFactory struct{ mock.Mock }

func (m *MockReturnUoWFactory) Create() commands.ReturnUoW {
	args := m.Called()
	return args.Get(0).(commands.ReturnUoW)
}

type MockSweepUoW struct{ mock.Mock }

func (m *MockSweepUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSweepUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSweepUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSweepUoW) RentalRepository() ports.RentalRepository {
	args := m.Called()
	return args.Get(0).(ports.RentalRepository)
}

type MockSweepUoWFactory struct{ mock.Mock }

func (m *MockSweepUoWFactory) Create() commands.SweepUoW {
	args := m.Called()
	return args.Get(0).(commands.SweepUoW)
}

type MockPurgeUoW struct{ mock.Mock }

func (m *MockPurgeUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPurgeUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPurgeUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPurgeUoW) QuoteRepository() ports.QuoteRepository {
	args := m.Called()
	return args.Get(0).(ports.QuoteRepository)
}

type MockPurgeUoWFactory struct{ mock.Mock }

func (m *MockPurgeUoWFactory) Create() commands.PurgeUoW {
	args := m.Called()
	return args.Get(0).(commands.PurgeUoW)
}
