package courier

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
)

// Courier is a driver who can be assigned orders.
//
// Business rules:
//   - Courier must have a valid UUID and non-empty name
//   - A courier may have never reported a position; Position then falls back
//     to kernel.DefaultLocation
//   - New couriers start offline
//
// Example usage:
//
//	c, err := courier.NewCourier(kernel.NewUUID(), "Joana")
//	if err != nil {
//	    // Handle construction error
//	}
//	_ = c.UpdateLocation(loc)
type Courier struct {
	id       kernel.UUID
	name     string
	location *kernel.Location
	online   bool
	guard    guard.ConstructorGuard
}

// NewCourier creates an offline courier without a known position.
func NewCourier(id kernel.UUID, name string) (*Courier, error) {
	c := &Courier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCourier reconstructs a Courier from persistent storage.
// location may be nil when the courier never reported a position.
func RestoreCourier(id kernel.UUID, name string, location *kernel.Location, online bool) (*Courier, error) {
	c, err := NewCourier(id, name)
	if err != nil {
		return nil, err
	}
	if location != nil {
		if err = c.UpdateLocation(*location); err != nil {
			return nil, err
		}
	}
	c.online = online
	return c, nil
}

// IsEqual compares two couriers by identity.
func (c *Courier) IsEqual(other *Courier) bool {
	if other == nil {
		return false
	}
	return c.id.IsEqual(other.id)
}

// Validate checks if the Courier was properly constructed.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

func (c *Courier) ID() kernel.UUID {
	return c.id
}

func (c *Courier) Name() string {
	return c.name
}

func (c *Courier) IsOnline() bool {
	return c.online
}

// Location returns the last reported position, or nil.
func (c *Courier) Location() *kernel.Location {
	if c.location == nil {
		return nil
	}
	loc := *c.location
	return &loc
}

// Position returns the last reported position, or kernel.DefaultLocation when
// the courier never reported one.
func (c *Courier) Position() kernel.Location {
	if c.location == nil {
		return kernel.DefaultLocation()
	}
	return *c.location
}

// Party returns the reference stored on orders assigned to this courier.
func (c *Courier) Party() order.Party {
	return order.Party{ID: c.id, Name: c.name}
}

// UpdateLocation records a new position reported by the courier's device.
func (c *Courier) UpdateLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	c.location = &location
	return nil
}

// SetOnline toggles whether the courier is available for new work.
func (c *Courier) SetOnline(online bool) {
	c.online = online
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}
