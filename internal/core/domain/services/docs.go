// Package services provides domain services that implement business
// logic spanning multiple aggregates.
//
// The package includes:
//   - DeliveryCostCalculator: prices book deliveries from routed
//     distance and quantity, including the platform service fee
package services
