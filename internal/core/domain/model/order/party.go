package order

import (
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// Party references an account owned by the external user store (client or courier).
type Party struct {
	ID   kernel.UUID
	Name string
}

// Validate requires a constructed id and a non-blank name.
func (p Party) Validate() error {
	if err := p.ID.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(p.Name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	return nil
}

// Waypoint is one end of a delivery: a street address and, when geocoded, its position.
type Waypoint struct {
	Address  string
	Location *kernel.Location
}

// NewWaypoint builds a waypoint; loc may be nil when the address was never geocoded.
func NewWaypoint(address string, loc *kernel.Location) (Waypoint, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return Waypoint{}, errs.NewValueIsRequiredError("address")
	}
	if loc != nil {
		if err := loc.Validate(); err != nil {
			return Waypoint{}, err
		}
		copied := *loc
		loc = &copied
	}
	return Waypoint{Address: address, Location: loc}, nil
}

// HasLocation reports whether the waypoint carries real coordinates.
func (w Waypoint) HasLocation() bool {
	return w.Location != nil
}
