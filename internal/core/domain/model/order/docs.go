// Package order contains the Order aggregate and its lifecycle state
// machine.
//
// An order moves books from a library to a user (or back, when it is a
// return order) through the linear statuses Pending, Accepted,
// Processing, InTransit and Delivered, with cancellation possible before
// a driver is assigned. Each transition stamps its timestamp exactly
// once, and delivery starts the rental return window on every order line.
package order
