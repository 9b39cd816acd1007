// Package kernel provides core domain primitives shared by the whole model.
//
// The package includes:
//   - UUID: a value object for unique identifiers with validation and comparison
//   - Coordinate: a geographic position in decimal degrees with haversine distance
//   - Address: a postal address carrying an optionally cached coordinate
//   - Money helpers fixing the scale and rounding mode for all monetary amounts
//
// These primitives enforce domain invariants and validation rules, ensuring
// that domain objects are always in a valid state. They are immutable and
// thread-safe, making them suitable for concurrent use.
package kernel
