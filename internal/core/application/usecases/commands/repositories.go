// Package commands contains business operations that modify system
// state. Implements the Command pattern for write operations in the
// CQRS architecture. All commands follow a consistent pattern:
// validation, transaction management, and persistence.
package commands

import (
	"context"

	"bookrider/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. Each handler depends on the narrowest composition of
// repositories it actually touches.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a
	// transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CartRepoFactory provides access to the cart repository within a
	// transaction.
	CartRepoFactory interface {
		CartRepository() ports.CartRepository
	}

	// RentalRepoFactory provides access to the rental repositories
	// within a transaction.
	RentalRepoFactory interface {
		RentalRepository() ports.RentalRepository
	}

	// RentalReturnRepoFactory provides access to the rental return
	// repository within a transaction.
	RentalReturnRepoFactory interface {
		RentalReturnRepository() ports.RentalReturnRepository
	}

	// QuoteRepoFactory provides access to the quote repository within a
	// transaction.
	QuoteRepoFactory interface {
		QuoteRepository() ports.QuoteRepository
	}

	// LibraryRepoFactory provides access to the library and book
	// repositories within a transaction.
	LibraryRepoFactory interface {
		LibraryRepository() ports.LibraryRepository
		BookRepository() ports.BookRepository
	}

	// TransactionRepoFactory provides access to the ledger repository
	// within a transaction.
	TransactionRepoFactory interface {
		TransactionRepository() ports.TransactionRepository
	}

	// QuoteUoW manages transactions for quote generation: it reads the
	// cart and reference data and stores the produced quote.
	QuoteUoW interface {
		TxManager
		CartRepoFactory
		QuoteRepoFactory
		LibraryRepoFactory
	}

	// QuoteUoWFactory creates new quote unit of work instances.
	QuoteUoWFactory interface {
		Create() QuoteUoW
	}

	// CartUoW manages transactions for cart mutations.
	CartUoW interface {
		TxManager
		CartRepoFactory
		QuoteRepoFactory
		LibraryRepoFactory
	}

	// CartUoWFactory creates new cart unit of work instances.
	CartUoWFactory interface {
		Create() CartUoW
	}

	// CheckoutUoW manages the checkout transaction: it turns the cart
	// into orders and payment ledger entries atomically.
	CheckoutUoW interface {
		TxManager
		CartRepoFactory
		OrderRepoFactory
		LibraryRepoFactory
		TransactionRepoFactory
	}

	// CheckoutUoWFactory creates new checkout unit of work instances.
	CheckoutUoWFactory interface {
		Create() CheckoutUoW
	}

	// OrderUoW manages transactions for order lifecycle transitions,
	// including the rentals and ledger entries delivery produces.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		RentalRepoFactory
		TransactionRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// ReturnUoW manages transactions for rental returns: the rentals,
	// the return record, the optional pickup order and the fees charged.
	ReturnUoW interface {
		TxManager
		RentalRepoFactory
		RentalReturnRepoFactory
		OrderRepoFactory
		CartRepoFactory
		LibraryRepoFactory
		TransactionRepoFactory
	}

	// ReturnUoWFactory creates new return unit of work instances.
	ReturnUoWFactory interface {
		Create() ReturnUoW
	}

	// SweepUoW manages the overdue-rental sweep transaction.
	SweepUoW interface {
		TxManager
		RentalRepoFactory
	}

	// SweepUoWFactory creates new sweep unit of work instances.
	SweepUoWFactory interface {
		Create() SweepUoW
	}

	// PurgeUoW manages the expired-quote purge transaction.
	PurgeUoW interface {
		TxManager
		QuoteRepoFactory
	}

	// PurgeUoWFactory creates new purge unit of work instances.
	PurgeUoWFactory interface {
		Create() PurgeUoW
	}
)
