package commands

import (
	"context"

	"dispatch/internal/core/domain/model/event"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// RateOrderCommandHandler stores the client's review of their own delivered order.
type RateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	clock      Clock
}

func NewRateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	clock Clock,
) RateOrderCommandHandler {
	return RateOrderCommandHandler{uowFactory: uowFactory, publisher: publisher, clock: clock}
}

func (h RateOrderCommandHandler) Handle(ctx context.Context, cmd RateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, err := updateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		if !o.Client().ID.IsEqual(cmd.ClientID()) {
			return ErrOrderDoesNotBelongToClient
		}
		return o.Rate(cmd.Rating(), cmd.Feedback())
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, h.publisher, event.NewOrderUpdated(o, h.clock.now()))
	return o, nil
}
