package order

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// DirectOrderDefaultPrice is charged for a direct call when the client has no standing price.
	DirectOrderDefaultPrice = 10.0

	// DirectOrderNote is stamped on the assignment entry of a direct call.
	DirectOrderNote = "direct call assigned to dispatcher"

	MinRating = 1
	MaxRating = 5
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not built by NewOrder,
	// NewDirectOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrHistoryIsInconsistent is returned when restored history contradicts the status.
	ErrHistoryIsInconsistent = errors.New("order history must end with the current status")
)

// Order is the aggregate root of the dispatch lifecycle.
//
// Order follows these invariants:
//   - history is never empty and its last entry carries the current status
//   - every status change appends exactly one history entry in the same call
//   - a rejected change leaves status and history untouched
//   - price, when present, is strictly positive
//   - ASSIGNED and later working statuses always have a courier
type Order struct {
	id        kernel.UUID
	createdAt time.Time

	client  Party
	courier *Party

	pickup      Waypoint
	dropoff     Waypoint
	description string

	price       *float64
	paid        bool
	courierPaid bool

	status  Status
	history []HistoryEntry
	chat    []ChatMessage

	rating   int
	feedback string

	version int

	guard guard.ConstructorGuard
}

// NewOrder creates an order submitted by a client.
//
// When fixedPrice is set (the client has a standing delivery price) the order skips
// manual pricing and is seeded directly as PRICED with that price; otherwise it starts
// as REQUESTED without a price.
//
// Example:
//
//	pickup, _ := order.NewWaypoint("Rua A, 10", &shopLocation)
//	dropoff, _ := order.NewWaypoint("Rua B, 99", nil)
//	o, err := order.NewOrder(kernel.NewUUID(), client, pickup, dropoff, "2 boxes", nil, time.Now())
func NewOrder(
	id kernel.UUID,
	client Party,
	pickup Waypoint,
	dropoff Waypoint,
	description string,
	fixedPrice *float64,
	now time.Time,
) (*Order, error) {
	o := &Order{
		createdAt:   now,
		description: strings.TrimSpace(description),
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setClient(client),
		o.setWaypoints(pickup, dropoff),
	); err != nil {
		return nil, err
	}

	seed := Requested
	if fixedPrice != nil {
		if err := o.setPrice(*fixedPrice); err != nil {
			return nil, err
		}
		seed = Priced
	}

	o.status = seed
	o.history = []HistoryEntry{{Status: seed, At: now}}
	return o, nil
}

// NewDirectOrder creates an order that a dispatcher opens and immediately takes as courier.
// History records REQUESTED followed by ASSIGNED; the price is the client's standing price
// or DirectOrderDefaultPrice.
func NewDirectOrder(
	id kernel.UUID,
	client Party,
	dispatcher Party,
	pickup Waypoint,
	dropoff Waypoint,
	description string,
	fixedPrice *float64,
	now time.Time,
) (*Order, error) {
	price := DirectOrderDefaultPrice
	if fixedPrice != nil {
		price = *fixedPrice
	}

	o, err := NewOrder(id, client, pickup, dropoff, description, nil, now)
	if err != nil {
		return nil, err
	}
	if err = dispatcher.Validate(); err != nil {
		return nil, err
	}
	if err = o.setPrice(price); err != nil {
		return nil, err
	}

	courier := dispatcher
	o.courier = &courier
	o.status = Assigned
	o.history = append(o.history, HistoryEntry{Status: Assigned, At: now, Note: DirectOrderNote})
	return o, nil
}

// Snapshot carries persisted state into RestoreOrder.
type Snapshot struct {
	ID          kernel.UUID
	CreatedAt   time.Time
	Client      Party
	Courier     *Party
	Pickup      Waypoint
	Dropoff     Waypoint
	Description string
	Price       *float64
	Paid        bool
	CourierPaid bool
	Status      Status
	History     []HistoryEntry
	Chat        []ChatMessage
	Rating      int
	Feedback    string
	Version     int
}

// RestoreOrder rebuilds an aggregate from storage and re-checks its invariants.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		createdAt:   s.CreatedAt,
		description: s.Description,
		paid:        s.Paid,
		courierPaid: s.CourierPaid,
		rating:      s.Rating,
		feedback:    s.Feedback,
		version:     s.Version,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setClient(s.Client),
		o.setWaypoints(s.Pickup, s.Dropoff),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}

	if s.Price != nil {
		if err := o.setPrice(*s.Price); err != nil {
			return nil, err
		}
	}
	if s.Courier != nil {
		if err := s.Courier.Validate(); err != nil {
			return nil, err
		}
		courier := *s.Courier
		o.courier = &courier
	}

	if len(s.History) == 0 || s.History[len(s.History)-1].Status != s.Status {
		return nil, ErrHistoryIsInconsistent
	}

	o.status = s.Status
	o.history = append([]HistoryEntry(nil), s.History...)
	o.chat = append([]ChatMessage(nil), s.Chat...)
	return o, nil
}

// Validate ensures the order was built by one of the constructors.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID        { return o.id }
func (o *Order) CreatedAt() time.Time   { return o.createdAt }
func (o *Order) Client() Party          { return o.client }
func (o *Order) Pickup() Waypoint       { return o.pickup }
func (o *Order) Dropoff() Waypoint      { return o.dropoff }
func (o *Order) Description() string    { return o.description }
func (o *Order) Status() Status         { return o.status }
func (o *Order) IsPaid() bool           { return o.paid }
func (o *Order) IsCourierPaid() bool    { return o.courierPaid }
func (o *Order) Rating() (int, string)  { return o.rating, o.feedback }
func (o *Order) Version() int           { return o.version }
func (o *Order) IsActive() bool         { return !o.status.IsTerminal() }
func (o *Order) HistoryLen() int        { return len(o.history) }
func (o *Order) ChatLen() int           { return len(o.chat) }

// Courier returns the assigned courier, or nil.
func (o *Order) Courier() *Party {
	if o.courier == nil {
		return nil
	}
	c := *o.courier
	return &c
}

// Price returns the delivery price, or nil while unpriced.
func (o *Order) Price() *float64 {
	if o.price == nil {
		return nil
	}
	p := *o.price
	return &p
}

// History returns a copy of the status log.
func (o *Order) History() []HistoryEntry {
	return append([]HistoryEntry(nil), o.history...)
}

// Chat returns a copy of the transcript.
func (o *Order) Chat() []ChatMessage {
	return append([]ChatMessage(nil), o.chat...)
}

// LastTransitionAt returns the timestamp of the newest history entry.
func (o *Order) LastTransitionAt() (time.Time, bool) {
	if len(o.history) == 0 {
		return time.Time{}, false
	}
	return o.history[len(o.history)-1].At, true
}

// IsAssignedTo reports whether courierID holds this order.
func (o *Order) IsAssignedTo(courierID kernel.UUID) bool {
	return o.courier != nil && o.courier.ID.IsEqual(courierID)
}

// TransitionTo applies a status change requested by any actor.
//
// Beyond the adjacency table it checks field prerequisites: PRICED needs a price and
// ASSIGNED needs a courier, so callers normally go through SetPrice and Assign.
//
// Returns:
//   - nil after appending exactly one history entry
//   - *InvalidTransitionError when the table has no such edge
//   - ValueIsRequiredError when a prerequisite field is missing
func (o *Order) TransitionTo(to Status, note string, now time.Time) error {
	switch to {
	case Priced:
		if o.price == nil {
			return errs.NewValueIsRequiredError("price")
		}
	case Assigned:
		if o.courier == nil {
			return errs.NewValueIsRequiredError("courier")
		}
	}
	return o.transition(to, note, now)
}

// SetPrice prices a REQUESTED order.
func (o *Order) SetPrice(price float64, now time.Time) error {
	if err := validatePrice(price); err != nil {
		return err
	}
	if _, err := o.status.TransitionTo(Priced); err != nil {
		return err
	}

	o.price = &price
	return o.transition(Priced, "", now)
}

// Assign hands a PRICED order to a courier.
func (o *Order) Assign(courier Party, now time.Time) error {
	if err := courier.Validate(); err != nil {
		return err
	}
	if _, err := o.status.TransitionTo(Assigned); err != nil {
		return err
	}

	o.courier = &courier
	return o.transition(Assigned, "", now)
}

// Accept is the courier taking the job and setting off at once (ASSIGNED -> ON_WAY).
func (o *Order) Accept(now time.Time) error {
	return o.transition(OnWay, "", now)
}

// Acknowledge is the courier taking the job without leaving yet (ASSIGNED -> ACCEPTED).
func (o *Order) Acknowledge(now time.Time) error {
	return o.transition(Accepted, "", now)
}

// ConfirmPickup records the courier arriving at the pickup. An ACCEPTED order passes
// through ON_WAY first, so two entries are appended in that case.
func (o *Order) ConfirmPickup(now time.Time) error {
	if o.status == Accepted {
		if err := o.transition(OnWay, "", now); err != nil {
			return err
		}
	}
	return o.transition(Collected, "", now)
}

// ConfirmDelivery records the courier handing the package over.
func (o *Order) ConfirmDelivery(now time.Time) error {
	return o.transition(Delivered, "", now)
}

// Cancel terminates any non-terminal order.
func (o *Order) Cancel(note string, now time.Time) error {
	return o.transition(Canceled, note, now)
}

// MarkPaid records that the client settled this order with dispatch.
func (o *Order) MarkPaid() error {
	if o.price == nil {
		return errs.NewValueIsRequiredError("price")
	}
	o.paid = true
	return nil
}

// MarkCourierPaid records that dispatch settled this order with the courier.
func (o *Order) MarkCourierPaid() error {
	if o.price == nil {
		return errs.NewValueIsRequiredError("price")
	}
	if o.courier == nil {
		return errs.NewValueIsRequiredError("courier")
	}
	o.courierPaid = true
	return nil
}

// Rate stores the client's review of a delivered order.
func (o *Order) Rate(rating int, feedback string) error {
	if o.status != Delivered {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s orders cannot be rated", o.status),
		)
	}
	if rating < MinRating || rating > MaxRating {
		return errs.NewValueIsOutOfRangeError("rating", rating, MinRating, MaxRating)
	}

	o.rating = rating
	o.feedback = strings.TrimSpace(feedback)
	return nil
}

// AddChatMessage appends to the transcript.
func (o *Order) AddChatMessage(msg ChatMessage) error {
	if err := msg.ID.Validate(); err != nil {
		return err
	}
	if msg.Content == "" {
		return errs.NewValueIsRequiredError("content")
	}
	o.chat = append(o.chat, msg)
	return nil
}

// AdvanceVersion is called by the repository once an update is stored.
func (o *Order) AdvanceVersion() int {
	o.version++
	return o.version
}

func (o *Order) transition(to Status, note string, now time.Time) error {
	next, err := o.status.TransitionTo(to)
	if err != nil {
		return err
	}

	o.status = next
	o.history = append(o.history, HistoryEntry{Status: next, At: now, Note: strings.TrimSpace(note)})
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setClient(client Party) error {
	if err := client.Validate(); err != nil {
		return err
	}
	o.client = client
	return nil
}

func (o *Order) setWaypoints(pickup, dropoff Waypoint) error {
	if pickup.Address == "" {
		return errs.NewValueIsRequiredError("pickupAddress")
	}
	if dropoff.Address == "" {
		return errs.NewValueIsRequiredError("dropoffAddress")
	}
	o.pickup = pickup
	o.dropoff = dropoff
	return nil
}

func (o *Order) setPrice(price float64) error {
	if err := validatePrice(price); err != nil {
		return err
	}
	o.price = &price
	return nil
}

func validatePrice(price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%v is not greater than 0", price))
	}
	return nil
}
