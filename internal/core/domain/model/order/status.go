package order

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
)

// ErrInvalidTransition is the sentinel for illegal order status transitions.
// Use errors.Is to classify; the concrete *InvalidTransitionError carries the
// current and requested statuses.
var ErrInvalidTransition = errors.New("invalid order status transition")

// InvalidTransitionError reports a rejected status transition together with
// the status the order is in and the status that was requested.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Status represents the lifecycle state of an order.
// It implements a state machine with an explicit transition table so illegal
// transitions are runtime errors, never silently accepted writes.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Ready ──> Completed
//	   │            │           │
//	   └────────────┴───────────┴──> Cancelled
//
// Completed and Cancelled are terminal. Courier assignment does not change
// the order status: an order stays Ready while its delivery is in flight and
// becomes Completed only when the delivery is done.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a freshly placed order.
	Pending

	// Confirmed indicates the restaurant has accepted the order.
	Confirmed

	// Ready indicates the order is prepared and awaits courier pickup.
	// Reaching Ready is the sole trigger for dispatch.
	Ready

	// Completed indicates the order was delivered. Terminal.
	Completed

	// Cancelled indicates the order was abandoned before delivery. Terminal.
	Cancelled
)

// getStatusStrings returns string representations for all statuses.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Confirmed: "Confirmed",
		Ready:     "Ready",
		Completed: "Completed",
		Cancelled: "Cancelled",
	}
}

// getValidStatusStrings returns only the statuses an order may legally hold.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "Pending",
		Confirmed: "Confirmed",
		Ready:     "Ready",
		Completed: "Completed",
		Cancelled: "Cancelled",
	}
}

// getAllowedTransitions is the closed transition table of the order state
// machine. A status absent from the map is terminal.
func getAllowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:   {Confirmed, Cancelled},
		Confirmed: {Ready, Cancelled},
		Ready:     {Completed, Cancelled},
	}
}

// Validate checks if the Status value is one an order may legally hold.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Safe to call on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// CanTransitionTo reports whether the transition table permits moving to
// target from the current status, without performing the transition.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range getAllowedTransitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo returns the target status if the transition is legal.
// Fails with an *InvalidTransitionError reporting both statuses otherwise.
//
// Example:
//
//	next, err := current.TransitionTo(order.Ready)
//	if errors.Is(err, order.ErrInvalidTransition) {
//	    // reject the request, the order is not in Confirmed
//	}
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}

	if !s.CanTransitionTo(target) {
		return Unknown, &InvalidTransitionError{From: s, To: target}
	}

	return target, nil
}

// ValidateCanHaveCourier validates consistency between order status and
// courier assignment. An order with a courier assigned cannot be in a
// pre-Ready status; Completed orders must have had a courier.
func (s Status) ValidateCanHaveCourier(courier bool) error {
	if courier && s != Ready && s != Completed && s != Cancelled {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have a courier", s.String()),
		)
	}

	if !courier && s == Completed {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have no courier", s.String()),
		)
	}

	return nil
}
