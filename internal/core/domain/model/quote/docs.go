// Package quote contains the Quote aggregate: the priced delivery
// options the candidate libraries offer for a requested book, ordered
// cheapest first and valid for a short window.
package quote
