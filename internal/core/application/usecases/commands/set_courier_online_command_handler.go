package commands

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/event"
	"dispatch/internal/core/ports"
)

type SetCourierOnlineCommandHandler struct {
	uowFactory CourierUoWFactory
	publisher  ports.EventPublisher
	clock      Clock
}

func NewSetCourierOnlineCommandHandler(
	uowFactory CourierUoWFactory,
	publisher ports.EventPublisher,
	clock Clock,
) SetCourierOnlineCommandHandler {
	return SetCourierOnlineCommandHandler{uowFactory: uowFactory, publisher: publisher, clock: clock}
}

func (h SetCourierOnlineCommandHandler) Handle(ctx context.Context, cmd SetCourierOnlineCommand) (*courier.Courier, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	c, err := updateCourier(ctx, h.uowFactory, cmd.CourierID(), func(c *courier.Courier) error {
		c.SetOnline(cmd.Online())
		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, h.publisher, event.NewCourierUpdated(c, h.clock.now()))
	return c, nil
}
