package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand moves an order along the lifecycle table.
//
// When actingCourierID is set the change is made by that courier and is only
// allowed on orders assigned to them.
type UpdateOrderStatusCommand struct {
	orderID         kernel.UUID
	status          order.Status
	note            string
	actingCourierID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewUpdateOrderStatusCommand(
	orderID kernel.UUID,
	status order.Status,
	note string,
	actingCourierID *kernel.UUID,
) (UpdateOrderStatusCommand, error) {
	if err := errors.Join(orderID.Validate(), status.Validate()); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	cmd := UpdateOrderStatusCommand{
		orderID: orderID,
		status:  status,
		note:    strings.TrimSpace(note),
		guard:   guard.NewConstructorGuard(),
	}
	if actingCourierID != nil {
		if err := actingCourierID.Validate(); err != nil {
			return UpdateOrderStatusCommand{}, err
		}
		id := *actingCourierID
		cmd.actingCourierID = &id
	}
	return cmd, nil
}

func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

func (c UpdateOrderStatusCommand) OrderID() kernel.UUID          { return c.orderID }
func (c UpdateOrderStatusCommand) Status() order.Status          { return c.status }
func (c UpdateOrderStatusCommand) Note() string                  { return c.note }
func (c UpdateOrderStatusCommand) ActingCourierID() *kernel.UUID { return c.actingCourierID }
