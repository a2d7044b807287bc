package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var ErrCreateDirectOrderCommandIsNotConstructed = errors.New(
	"CreateDirectOrderCommand must be created via NewCreateDirectOrderCommand constructor",
)

// CreateDirectOrderCommand is a dispatcher opening an order on behalf of a client
// and taking it as courier straight away (a call-in delivery).
type CreateDirectOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	client      order.Party
	dispatcher  order.Party
	pickup      order.Waypoint
	dropoff     order.Waypoint
	description string

	guard guard.ConstructorGuard
}

func NewCreateDirectOrderCommand(
	orderID kernel.UUID,
	client order.Party,
	dispatcher order.Party,
	pickup order.Waypoint,
	dropoff order.Waypoint,
	description string,
) (CreateDirectOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		client.Validate(),
		dispatcher.Validate(),
		validateWaypoint("pickup", pickup),
		validateWaypoint("dropoff", dropoff),
	); err != nil {
		return CreateDirectOrderCommand{}, err
	}

	return CreateDirectOrderCommand{
		orderID:     orderID,
		client:      client,
		dispatcher:  dispatcher,
		pickup:      pickup,
		dropoff:     dropoff,
		description: strings.TrimSpace(description),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CreateDirectOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateDirectOrderCommandIsNotConstructed)
}

func (c CreateDirectOrderCommand) OrderID() kernel.UUID    { return c.orderID }
func (c CreateDirectOrderCommand) Client() order.Party     { return c.client }
func (c CreateDirectOrderCommand) Dispatcher() order.Party { return c.dispatcher }
func (c CreateDirectOrderCommand) Pickup() order.Waypoint  { return c.pickup }
func (c CreateDirectOrderCommand) Dropoff() order.Waypoint { return c.dropoff }
func (c CreateDirectOrderCommand) Description() string     { return c.description }
