// Package rental tracks rented book copies after delivery: the Rental
// aggregate with its late fees and overdue handling, and the
// RentalReturn aggregate grouping the rentals a user sends back in one
// act.
package rental
