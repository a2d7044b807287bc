package kernel

import (
	"fmt"
	"strings"

	"dispatch/internal/pkg/errs"
)

// Role is the actor kind behind a request or a chat message.
type Role string

const (
	RoleClient  Role = "CLIENT"
	RoleAdmin   Role = "ADMIN"
	RoleCourier Role = "COURIER"
)

// ParseRole accepts the role name in any case.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

// Validate rejects anything but the three known roles.
func (r Role) Validate() error {
	switch r {
	case RoleClient, RoleAdmin, RoleCourier:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", string(r)))
	}
}
