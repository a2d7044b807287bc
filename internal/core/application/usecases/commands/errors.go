package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/event"
	"dispatch/internal/core/ports"
)

var (
	ErrNoFreeCouriersFound = errors.New("no free couriers found")
	ErrNoOrderFound        = errors.New("no order found")

	// ErrOrderNotAssignedToCourier is returned when a courier acts on someone else's order.
	ErrOrderNotAssignedToCourier = errors.New("order is not assigned to this courier")
	// ErrOrderDoesNotBelongToClient is returned when a client acts on someone else's order.
	ErrOrderDoesNotBelongToClient = errors.New("order does not belong to this client")
	// ErrStopIsNotNext is returned when a courier confirms a stop other than the first one on the route.
	ErrStopIsNotNext = errors.New("stop is not the next one on the route")
	// ErrCourierMayNotSetStatus is returned when a courier tries a status change reserved for
	// dispatchers or for stop confirmation.
	ErrCourierMayNotSetStatus = errors.New(
		"couriers may only accept an order here; confirm pickups and deliveries via /couriers/{id}/route/confirm",
	)
)

func publish(ctx context.Context, p ports.EventPublisher, events ...event.Event) {
	if p == nil {
		return
	}
	for _, e := range events {
		p.Publish(ctx, e)
	}
}
