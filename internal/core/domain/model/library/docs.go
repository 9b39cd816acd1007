// Package library carries the reference data quoting needs: the lending
// libraries with their geocoded addresses and the books they stock.
package library
