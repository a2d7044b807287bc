package commands

import (
	"context"
	"fmt"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/event"
	"dispatch/internal/core/ports"
)

// UpdateCourierLocationCommandHandler stores the position on the courier record and
// then refreshes the location cache that route queries read first.
type UpdateCourierLocationCommandHandler struct {
	uowFactory CourierUoWFactory
	locations  ports.LocationStore
	publisher  ports.EventPublisher
	clock      Clock
}

func NewUpdateCourierLocationCommandHandler(
	uowFactory CourierUoWFactory,
	locations ports.LocationStore,
	publisher ports.EventPublisher,
	clock Clock,
) UpdateCourierLocationCommandHandler {
	return UpdateCourierLocationCommandHandler{
		uowFactory: uowFactory,
		locations:  locations,
		publisher:  publisher,
		clock:      clock,
	}
}

func (h UpdateCourierLocationCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateCourierLocationCommand,
) (*courier.Courier, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	c, err := updateCourier(ctx, h.uowFactory, cmd.CourierID(), func(c *courier.Courier) error {
		return c.UpdateLocation(cmd.Location())
	})
	if err != nil {
		return nil, err
	}

	if h.locations != nil {
		if err = h.locations.Save(ctx, cmd.CourierID(), cmd.Location()); err != nil {
			return nil, fmt.Errorf("cache courier location: %w", err)
		}
	}

	publish(ctx, h.publisher, event.NewCourierUpdated(c, h.clock.now()))
	return c, nil
}
