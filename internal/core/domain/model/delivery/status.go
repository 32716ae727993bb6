package delivery

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
)

// ErrInvalidTransition is the sentinel for illegal delivery status transitions.
var ErrInvalidTransition = errors.New("invalid delivery status transition")

// InvalidTransitionError reports a rejected delivery status transition.
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

// Status represents the lifecycle state of a delivery.
//
// State transitions:
//
//	Offered ──> Accepted ──> Collected ──> Delivered
//	   │            │
//	   └────────────┴──> Cancelled
//
// The courier-driven leg (Accepted -> Collected -> Delivered) is strictly
// sequential and irreversible; a collected delivery can no longer be
// cancelled.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Offered means a courier was selected and claimed but has not yet
	// acknowledged the delivery.
	Offered

	// Accepted means the assigned courier acknowledged the offer.
	Accepted

	// Collected means the courier picked the order up at the restaurant.
	Collected

	// Delivered means the order reached the customer. Terminal.
	Delivered

	// Cancelled means the delivery was abandoned before collection. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Offered:   "Offered",
		Accepted:  "Accepted",
		Collected: "Collected",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Offered:   "Offered",
		Accepted:  "Accepted",
		Collected: "Collected",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

// getAllowedTransitions is the closed transition table of the delivery state
// machine. A status absent from the map is terminal.
func getAllowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		Offered:   {Accepted, Cancelled},
		Accepted:  {Collected, Cancelled},
		Collected: {Delivered},
	}
}

// Validate checks if the Status value is one a delivery may legally hold.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransitionTo reports whether the transition table permits moving to
// target from the current status.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range getAllowedTransitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo returns the target status if the transition is legal,
// failing with an *InvalidTransitionError otherwise.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}

	if !s.CanTransitionTo(target) {
		return Unknown, &InvalidTransitionError{From: s, To: target}
	}

	return target, nil
}
