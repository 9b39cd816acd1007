// Package cart contains the ShoppingCart aggregate: the books a user
// intends to order, grouped per library, with delivery totals that are
// recomputed after every mutation and an optimistic version guarding
// concurrent saves.
package cart
