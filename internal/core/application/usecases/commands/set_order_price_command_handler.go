package commands

import (
	"context"

	"dispatch/internal/core/domain/model/event"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// SetOrderPriceCommandHandler moves an order from REQUESTED to PRICED.
type SetOrderPriceCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	clock      Clock
}

func NewSetOrderPriceCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	clock Clock,
) SetOrderPriceCommandHandler {
	return SetOrderPriceCommandHandler{uowFactory: uowFactory, publisher: publisher, clock: clock}
}

func (h SetOrderPriceCommandHandler) Handle(ctx context.Context, cmd SetOrderPriceCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := h.clock.now()
	o, err := updateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.SetPrice(cmd.Price(), now)
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, h.publisher, event.NewOrderUpdated(o, now))
	return o, nil
}
