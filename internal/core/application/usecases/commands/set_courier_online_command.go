package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrSetCourierOnlineCommandIsNotConstructed = errors.New(
	"SetCourierOnlineCommand must be created via NewSetCourierOnlineCommand constructor",
)

// SetCourierOnlineCommand is a courier starting or ending a shift.
type SetCourierOnlineCommand struct {
	courierID kernel.UUID
	online    bool

	guard guard.ConstructorGuard
}

func NewSetCourierOnlineCommand(courierID kernel.UUID, online bool) (SetCourierOnlineCommand, error) {
	if err := courierID.Validate(); err != nil {
		return SetCourierOnlineCommand{}, err
	}
	return SetCourierOnlineCommand{courierID: courierID, online: online, guard: guard.NewConstructorGuard()}, nil
}

func (c SetCourierOnlineCommand) Validate() error {
	return c.guard.Validate(ErrSetCourierOnlineCommandIsNotConstructed)
}

func (c SetCourierOnlineCommand) CourierID() kernel.UUID { return c.courierID }
func (c SetCourierOnlineCommand) Online() bool           { return c.online }
