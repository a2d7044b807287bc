package order

import (
	"errors"
	"fmt"
	"strings"

	"dispatch/internal/pkg/errs"
)

// ErrInvalidTransition is the sentinel wrapped by InvalidTransitionError.
var ErrInvalidTransition = errors.New("invalid status transition")

// Status is a position in the order lifecycle.
//
// State transitions:
//
//	Requested ──> Priced ──> Assigned ──┬──> Accepted ──┐
//	                                    │               v
//	                                    └───────────> OnWay ──> Collected ──> Delivered
//	                                                    │                         ^
//	                                                    └─────────────────────────┘
//
// Every non-terminal status may also move to Canceled.
// Delivered and Canceled are terminal.
type Status int

const (
	// Unknown catches uninitialised values.
	Unknown Status = iota
	// Requested is the status of a freshly submitted order without a price.
	Requested
	// Priced means a dispatcher (or the client's standing price) set the delivery price.
	Priced
	// Assigned means a courier was chosen by the dispatcher.
	Assigned
	// Accepted means the courier acknowledged the job but has not set off.
	Accepted
	// OnWay means the courier is heading to the pickup.
	OnWay
	// Collected means the courier holds the package.
	Collected
	// Delivered is the terminal success state.
	Delivered
	// Canceled is the terminal failure state.
	Canceled
)

var statusNames = map[Status]string{
	Requested: "REQUESTED",
	Priced:    "PRICED",
	Assigned:  "ASSIGNED",
	Accepted:  "ACCEPTED",
	OnWay:     "ON_WAY",
	Collected: "COLLECTED",
	Delivered: "DELIVERED",
	Canceled:  "CANCELED",
}

// transitions is the adjacency table of the state machine.
var transitions = map[Status][]Status{
	Requested: {Priced, Canceled},
	Priced:    {Assigned, Canceled},
	Assigned:  {Accepted, OnWay, Canceled},
	Accepted:  {OnWay, Canceled},
	OnWay:     {Collected, Delivered, Canceled},
	Collected: {Delivered, Canceled},
}

// InvalidTransitionError reports a status change that the adjacency table forbids.
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

// AllStatuses lists the valid statuses in lifecycle order.
func AllStatuses() []Status {
	return []Status{Requested, Priced, Assigned, Accepted, OnWay, Collected, Delivered, Canceled}
}

// ParseStatus converts the persisted/wire name (e.g. "ON_WAY") back into a Status.
// Matching is case-insensitive.
func ParseStatus(s string) (Status, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for status, n := range statusNames {
		if n == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the upper-case name, or "UNKNOWN" for invalid values.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Canceled
}

// CanTransitionTo reports whether the adjacency table has an edge s -> to.
func (s Status) CanTransitionTo(to Status) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionTo returns the target status when the edge exists.
//
// Returns:
//   - (to, nil) on a legal transition
//   - (Unknown, *InvalidTransitionError) otherwise
//
// Example:
//
//	next, err := order.Assigned.TransitionTo(order.OnWay)
//	if errors.Is(err, order.ErrInvalidTransition) {
//	    // reject the request, the order is untouched
//	}
func (s Status) TransitionTo(to Status) (Status, error) {
	if !s.CanTransitionTo(to) {
		return Unknown, &InvalidTransitionError{From: s, To: to}
	}
	return to, nil
}

// HasPendingPickup reports whether a pickup stop is still to be visited.
func (s Status) HasPendingPickup() bool {
	return s == Accepted || s == OnWay
}

// HasPendingDropoff reports whether a dropoff stop is still to be visited.
func (s Status) HasPendingDropoff() bool {
	return s == Accepted || s == OnWay || s == Collected
}

// IsMonitoredForDelay reports whether a stale order in this status needs operator attention.
func (s Status) IsMonitoredForDelay() bool {
	return s == Assigned || s == OnWay
}
