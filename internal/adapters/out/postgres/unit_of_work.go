// Package postgres provides the GORM-based Unit of Work that binds all
// repositories to a single database transaction.
//
// Each business operation gets its own unit of work instance. Handlers
// call Begin, resolve the repositories they need, and finish with
// Commit or Rollback:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//
//	if err := uow.OrderRepository().Add(ctx, order); err != nil {
//	    uow.Rollback(ctx)
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Repositories resolved before Begin run against the main connection
// without a transaction. Aggregates saved through tracked repositories
// are collected for post-commit processing such as notifications.
package postgres

import (
	"context"

	"bookrider/internal/adapters/out/postgres/cartrepo"
	"bookrider/internal/adapters/out/postgres/libraryrepo"
	"bookrider/internal/adapters/out/postgres/orderrepo"
	"bookrider/internal/adapters/out/postgres/quoterepo"
	"bookrider/internal/adapters/out/postgres/rentalrepo"
	"bookrider/internal/adapters/out/postgres/rentalreturnrepo"
	"bookrider/internal/adapters/out/postgres/transactionrepo"
	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one GORM
// database connection. Every Create call returns a fresh instance with
// its own transaction state.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of
// work instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork ready for one business transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates a database transaction across the
// repositories resolved from it and tracks the aggregates they save.
// Not safe for concurrent use; goroutines get their own instances.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts a database transaction. Calling Begin again while a
// transaction is active is a no-op rather than a nested transaction.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes the current transaction. Returns
// gorm.ErrInvalidTransaction if none is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the current transaction. Returns
// gorm.ErrInvalidTransaction if none is active.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// current returns the active transaction, or the main connection when
// no transaction has been started.
func (uow *GormUnitOfWork) current() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// OrderRepository returns an OrderRepository bound to the current
// transaction.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.current(), uow)
}

// CartRepository returns a CartRepository bound to the current
// transaction.
func (uow *GormUnitOfWork) CartRepository() ports.CartRepository {
	return cartrepo.NewGormCartRepository(uow.current(), uow)
}

// RentalRepository returns a RentalRepository bound to the current
// transaction.
func (uow *GormUnitOfWork) RentalRepository() ports.RentalRepository {
	return rentalrepo.NewGormRentalRepository(uow.current(), uow)
}

// RentalReturnRepository returns a RentalReturnRepository bound to the
// current transaction.
func (uow *GormUnitOfWork) RentalReturnRepository() ports.RentalReturnRepository {
	return rentalreturnrepo.NewGormRentalReturnRepository(uow.current(), uow)
}

// QuoteRepository returns a QuoteRepository bound to the current
// transaction.
func (uow *GormUnitOfWork) QuoteRepository() ports.QuoteRepository {
	return quoterepo.NewGormQuoteRepository(uow.current(), uow)
}

// LibraryRepository returns a LibraryRepository bound to the current
// transaction.
func (uow *GormUnitOfWork) LibraryRepository() ports.LibraryRepository {
	return libraryrepo.NewGormLibraryRepository(uow.current())
}

// BookRepository returns a BookRepository bound to the current
// transaction.
func (uow *GormUnitOfWork) BookRepository() ports.BookRepository {
	return libraryrepo.NewGormBookRepository(uow.current())
}

// TransactionRepository returns a TransactionRepository bound to the
// current transaction.
func (uow *GormUnitOfWork) TransactionRepository() ports.TransactionRepository {
	return transactionrepo.NewGormTransactionRepository(uow.current())
}

// TrackAggregate registers an aggregate as modified within this unit of
// work. Repository implementations call it on Add and Update; the
// collected aggregates drive post-commit processing.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}
