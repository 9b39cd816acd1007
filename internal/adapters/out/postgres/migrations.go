package postgres

import (
	"bookrider/internal/adapters/out/postgres/cartrepo"
	"bookrider/internal/adapters/out/postgres/distancerepo"
	"bookrider/internal/adapters/out/postgres/libraryrepo"
	"bookrider/internal/adapters/out/postgres/orderrepo"
	"bookrider/internal/adapters/out/postgres/quoterepo"
	"bookrider/internal/adapters/out/postgres/rentalrepo"
	"bookrider/internal/adapters/out/postgres/rentalreturnrepo"
	"bookrider/internal/adapters/out/postgres/transactionrepo"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for every persistence DTO.
// Called at startup; GORM only applies missing pieces.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{},
		&cartrepo.CartDTO{}, &cartrepo.CartItemDTO{}, &cartrepo.CartSubItemDTO{},
		&rentalrepo.RentalDTO{},
		&rentalreturnrepo.RentalReturnDTO{}, &rentalreturnrepo.RentalReturnItemDTO{},
		&quoterepo.QuoteDTO{}, &quoterepo.QuoteOptionDTO{},
		&libraryrepo.LibraryDTO{}, &libraryrepo.BookDTO{}, &libraryrepo.LibraryBookDTO{},
		&transactionrepo.TransactionDTO{},
		&distancerepo.DistanceCacheDTO{},
	)
}
