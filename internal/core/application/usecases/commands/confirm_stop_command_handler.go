package commands

import (
	"context"

	"dispatch/internal/core/application/positions"
	"dispatch/internal/core/domain/model/event"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// ConfirmStopCommandHandler recomputes the courier's route from stored state and
// accepts the confirmation only for the route's first stop. A pickup moves the order
// to COLLECTED, a dropoff to DELIVERED.
type ConfirmStopCommandHandler struct {
	uowFactory UoWFactory
	positions  positions.Resolver
	publisher  ports.EventPublisher
	clock      Clock
}

func NewConfirmStopCommandHandler(
	uowFactory UoWFactory,
	resolver positions.Resolver,
	publisher ports.EventPublisher,
	clock Clock,
) ConfirmStopCommandHandler {
	return ConfirmStopCommandHandler{
		uowFactory: uowFactory,
		positions:  resolver,
		publisher:  publisher,
		clock:      clock,
	}
}

func (h ConfirmStopCommandHandler) Handle(ctx context.Context, cmd ConfirmStopCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()

	position, err := h.positions.Resolve(ctx, uow.CourierRepository(), cmd.CourierID())
	if err != nil {
		return nil, err
	}

	active, err := ordersRepo.GetActiveByCourier(ctx, cmd.CourierID())
	if err != nil {
		return nil, err
	}

	next, ok := services.NewRouteSequencer().Optimize(position, active, route.TrafficLow).First()
	if !ok || next.ID != cmd.StopID() {
		return nil, ErrStopIsNotNext
	}

	var target *order.Order
	for _, o := range active {
		if o.ID().IsEqual(next.OrderID) {
			target = o
			break
		}
	}

	now := h.clock.now()
	if next.Type == route.StopPickup {
		err = target.ConfirmPickup(now)
	} else {
		err = target.ConfirmDelivery(now)
	}
	if err != nil {
		return nil, err
	}

	if err = ordersRepo.Update(ctx, target); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publish(ctx, h.publisher, event.NewOrderUpdated(target, now))
	return target, nil
}
