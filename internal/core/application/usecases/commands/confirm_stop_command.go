package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrConfirmStopCommandIsNotConstructed = errors.New(
	"ConfirmStopCommand must be created via NewConfirmStopCommand constructor",
)

// ConfirmStopCommand is a courier reporting that they reached a stop of their route.
type ConfirmStopCommand struct {
	courierID kernel.UUID
	stopID    string

	guard guard.ConstructorGuard
}

func NewConfirmStopCommand(courierID kernel.UUID, stopID string) (ConfirmStopCommand, error) {
	if err := courierID.Validate(); err != nil {
		return ConfirmStopCommand{}, err
	}
	stopID = strings.TrimSpace(stopID)
	if stopID == "" {
		return ConfirmStopCommand{}, errs.NewValueIsRequiredError("stopId")
	}

	return ConfirmStopCommand{
		courierID: courierID,
		stopID:    stopID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmStopCommand) Validate() error {
	return c.guard.Validate(ErrConfirmStopCommandIsNotConstructed)
}

func (c ConfirmStopCommand) CourierID() kernel.UUID { return c.courierID }
func (c ConfirmStopCommand) StopID() string         { return c.stopID }
