package commands

import (
	"errors"
	"fmt"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand is a client submitting a delivery request.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), client, pickup, dropoff, "2 boxes")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	client      order.Party
	pickup      order.Waypoint
	dropoff     order.Waypoint
	description string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the identity of the order and client and both waypoints.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	client order.Party,
	pickup order.Waypoint,
	dropoff order.Waypoint,
	description string,
) (CreateOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		client.Validate(),
		validateWaypoint("pickup", pickup),
		validateWaypoint("dropoff", dropoff),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{
		orderID:     orderID,
		client:      client,
		pickup:      pickup,
		dropoff:     dropoff,
		description: strings.TrimSpace(description),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID    { return c.orderID }
func (c CreateOrderCommand) Client() order.Party     { return c.client }
func (c CreateOrderCommand) Pickup() order.Waypoint  { return c.pickup }
func (c CreateOrderCommand) Dropoff() order.Waypoint { return c.dropoff }
func (c CreateOrderCommand) Description() string     { return c.description }

func validateWaypoint(name string, w order.Waypoint) error {
	_, err := order.NewWaypoint(w.Address, w.Location)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
