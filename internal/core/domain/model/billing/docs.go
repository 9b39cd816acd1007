// Package billing holds the append-only transaction ledger: user
// payments, driver payouts, late fees and refunds.
package billing
