package commands

import (
	"context"

	"dispatch/internal/core/domain/model/event"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// CreateDirectOrderCommandHandler stores an order that starts out ASSIGNED to the
// dispatcher who opened it, priced at the client's standing price or the default.
type CreateDirectOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	clock      Clock
}

func NewCreateDirectOrderCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	clock Clock,
) CreateDirectOrderCommandHandler {
	return CreateDirectOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
	}
}

func (h CreateDirectOrderCommandHandler) Handle(ctx context.Context, cmd CreateDirectOrderCommand) (*order.Order, error) {
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
	o, err := order.NewDirectOrder(
		cmd.OrderID(),
		cmd.Client(),
		cmd.Dispatcher(),
		cmd.Pickup(),
		cmd.Dropoff(),
		cmd.Description(),
		fixedPrice,
		now,
	)
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
