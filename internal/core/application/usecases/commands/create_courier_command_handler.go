package commands

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/event"
	"dispatch/internal/core/ports"
)

// CreateCourierCommandHandler stores a new offline courier.
type CreateCourierCommandHandler struct {
	uowFactory CourierUoWFactory
	publisher  ports.EventPublisher
	clock      Clock
}

func NewCreateCourierCommandHandler(
	uowFactory CourierUoWFactory,
	publisher ports.EventPublisher,
	clock Clock,
) CreateCourierCommandHandler {
	return CreateCourierCommandHandler{uowFactory: uowFactory, publisher: publisher, clock: clock}
}

func (h CreateCourierCommandHandler) Handle(ctx context.Context, cmd CreateCourierCommand) (*courier.Courier, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	c, err := courier.NewCourier(cmd.CourierID(), cmd.Name())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.CourierRepository().Add(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publish(ctx, h.publisher, event.NewCourierUpdated(c, h.clock.now()))
	return c, nil
}
