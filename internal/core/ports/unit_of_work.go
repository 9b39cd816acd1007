package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each
// request/command. This ensures proper isolation between concurrent
// operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and hands out repositories bound to
// the same transaction. Client code must explicitly manage the
// transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current
	// transaction.
	OrderRepository() OrderRepository

	// CartRepository returns a CartRepository bound to the current
	// transaction.
	CartRepository() CartRepository

	// RentalRepository returns a RentalRepository bound to the current
	// transaction.
	RentalRepository() RentalRepository

	// RentalReturnRepository returns a RentalReturnRepository bound to
	// the current transaction.
	RentalReturnRepository() RentalReturnRepository

	// QuoteRepository returns a QuoteRepository bound to the current
	// transaction.
	QuoteRepository() QuoteRepository

	// LibraryRepository returns a LibraryRepository bound to the current
	// transaction.
	LibraryRepository() LibraryRepository

	// BookRepository returns a BookRepository bound to the current
	// transaction.
	BookRepository() BookRepository

	// TransactionRepository returns a TransactionRepository bound to the
	// current transaction.
	TransactionRepository() TransactionRepository
}
