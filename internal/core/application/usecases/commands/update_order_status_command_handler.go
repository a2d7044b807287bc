package commands

import (
	"context"
	"fmt"

	"dispatch/internal/core/domain/model/event"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// UpdateOrderStatusCommandHandler applies a generic status change. A change the
// lifecycle table forbids fails with order.ErrInvalidTransition and nothing is stored.
//
// Dispatchers get the whole table. A courier may only acknowledge or start an assigned
// order; pickups and deliveries go through ConfirmStop so the route order holds.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	clock      Clock
}

func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	clock Clock,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{uowFactory: uowFactory, publisher: publisher, clock: clock}
}

func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := h.clock.now()
	o, err := updateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		if c := cmd.ActingCourierID(); c != nil {
			if !o.IsAssignedTo(*c) {
				return ErrOrderNotAssignedToCourier
			}
			if !courierMayMove(o.Status(), cmd.Status()) {
				return fmt.Errorf("%w: %s to %s", ErrCourierMayNotSetStatus, o.Status(), cmd.Status())
			}
		}
		return o.TransitionTo(cmd.Status(), cmd.Note(), now)
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, h.publisher, event.NewOrderUpdated(o, now))
	return o, nil
}

func courierMayMove(from, to order.Status) bool {
	switch to {
	case order.Accepted:
		return from == order.Assigned
	case order.OnWay:
		return from == order.Assigned || from == order.Accepted
	default:
		return false
	}
}
