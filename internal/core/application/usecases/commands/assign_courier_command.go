package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAssignCourierCommandIsNotConstructed = errors.New(
	"AssignCourierCommand must be created via NewAssignCourierCommand constructor",
)

// AssignCourierCommand hands a PRICED order to a courier.
//
// Both references are optional: without an order the oldest PRICED order is taken,
// without a courier the nearest online courier is chosen. The parameterless form is
// what the auto-dispatch job sends.
//
// Example:
//
//	cmd, _ := NewAssignCourierCommand(&orderID, &courierID) // dispatcher's explicit choice
//	auto := NewAutoAssignCourierCommand()                   // let the dispatcher service decide
type AssignCourierCommand struct {
	orderID   *kernel.UUID
	courierID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignCourierCommand(orderID, courierID *kernel.UUID) (AssignCourierCommand, error) {
	cmd := AssignCourierCommand{guard: guard.NewConstructorGuard()}

	if orderID != nil {
		if err := orderID.Validate(); err != nil {
			return AssignCourierCommand{}, err
		}
		id := *orderID
		cmd.orderID = &id
	}
	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return AssignCourierCommand{}, err
		}
		id := *courierID
		cmd.courierID = &id
	}

	return cmd, nil
}

// NewAutoAssignCourierCommand picks both the order and the courier automatically.
func NewAutoAssignCourierCommand() AssignCourierCommand {
	return AssignCourierCommand{guard: guard.NewConstructorGuard()}
}

func (c AssignCourierCommand) Validate() error {
	return c.guard.Validate(ErrAssignCourierCommandIsNotConstructed)
}

// OrderID returns the requested order, or nil for "oldest priced".
func (c AssignCourierCommand) OrderID() *kernel.UUID { return c.orderID }

// CourierID returns the requested courier, or nil for "nearest online".
func (c AssignCourierCommand) CourierID() *kernel.UUID { return c.courierID }
