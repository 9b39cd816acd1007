package order

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct delivery workflow.
//
// State transitions:
//
//	Pending ──> Accepted ──> Processing ──> InTransit ──> Delivered
//	   │            │
//	   └────────────┴──> Canceled
//
// Delivered and Canceled are terminal. Transitions never skip states.
type Status int

const (
	// UnknownStatus represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	UnknownStatus Status = iota

	// Pending is the initial status when an order is created at checkout.
	Pending

	// Accepted indicates a librarian has accepted the order.
	Accepted

	// Processing indicates a driver has been assigned and the order is
	// being prepared for pickup.
	Processing

	// InTransit indicates the driver has picked up the books.
	InTransit

	// Delivered indicates the books reached the destination.
	// This is a final state.
	Delivered

	// Canceled indicates the order was canceled before processing began.
	// This is a final state.
	Canceled
)

// getStatusStrings returns a map of Status values to their string
// representations used for persistence and display.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus: "UNKNOWN",
		Pending:       "PENDING",
		Accepted:      "ACCEPTED",
		Processing:    "PROCESSING",
		InTransit:     "IN_TRANSIT",
		Delivered:     "DELIVERED",
		Canceled:      "CANCELED",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // UnknownStatus is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "PENDING",
		Accepted:   "ACCEPTED",
		Processing: "PROCESSING",
		InTransit:  "IN_TRANSIT",
		Delivered:  "DELIVERED",
		Canceled:   "CANCELED",
	}
}

// StatusFromString parses a persisted status string back into a Status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return UnknownStatus, NewUnknownStatusError(s)
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Pending, Accepted, Processing, InTransit,
// Delivered, Canceled. UnknownStatus (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return NewUnknownStatusError(s.String())
	}
	return nil
}

// String returns the persisted name of the status, for example "IN_TRANSIT".
// Implements the fmt.Stringer interface and is safe to call on any Status
// value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Canceled
}

// Accept transitions the status to Accepted.
//
// Valid transitions:
//   - Pending -> Accepted
func (s Status) Accept() (Status, error) {
	if s != Pending {
		return 0, NewInvalidTransitionError(s, Accepted)
	}
	return Accepted, nil
}

// AssignDriver transitions the status to Processing.
//
// Valid transitions:
//   - Accepted -> Processing
func (s Status) AssignDriver() (Status, error) {
	if s != Accepted {
		return 0, NewInvalidTransitionError(s, Processing)
	}
	return Processing, nil
}

// PickUp transitions the status to InTransit.
//
// Valid transitions:
//   - Processing -> InTransit
func (s Status) PickUp() (Status, error) {
	if s != Processing {
		return 0, NewInvalidTransitionError(s, InTransit)
	}
	return InTransit, nil
}

// Deliver transitions the status to Delivered.
//
// Valid transitions:
//   - InTransit -> Delivered
//
// Delivered is a final state with no further transitions possible.
func (s Status) Deliver() (Status, error) {
	if s != InTransit {
		return 0, NewInvalidTransitionError(s, Delivered)
	}
	return Delivered, nil
}

// Cancel transitions the status to Canceled.
//
// Valid transitions:
//   - Pending -> Canceled
//   - Accepted -> Canceled
//
// Once a driver is assigned the order can no longer be canceled.
func (s Status) Cancel() (Status, error) {
	if s != Pending && s != Accepted {
		return 0, NewInvalidTransitionError(s, Canceled)
	}
	return Canceled, nil
}
