package commands

import (
	"context"

	"dispatch/internal/core/domain/model/event"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// CreateOrderCommandHandler stores a new client order. A client with a standing
// delivery price gets the order pre-priced.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, publisher, nil)
//	o, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// o.Status() is REQUESTED or PRICED
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	clock      Clock
}

func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	clock Clock,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
	}
}

func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
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

	fixedPrice, err := uow.ClientRepository().FixedPrice(ctx, cmd.Client().ID)
	if err != nil {
		return nil, err
	}

	now := h.clock.now()
	o, err := order.NewOrder(cmd.OrderID(), cmd.Client(), cmd.Pickup(), cmd.Dropoff(), cmd.Description(), fixedPrice, now)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publish(ctx, h.publisher, event.NewOrderCreated(o, now))
	return o, nil
}
