package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderFilter narrows ListOrders. Nil fields match everything.
type OrderFilter struct {
	Status    *order.Status
	CourierID *kernel.UUID
	ClientID  *kernel.UUID
	Limit     int
	Offset    int
}

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order together with its history and chat.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order. The stored version must match
	// aggregate.Version(); otherwise errs.VersionIsInvalidError is returned and
	// nothing is written. On success the aggregate's version is advanced.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id or returns errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Delete removes an order and its child rows.
	Delete(ctx context.Context, id kernel.UUID) error

	// List returns orders matching the filter, newest first.
	List(ctx context.Context, filter OrderFilter) ([]*order.Order, error)

	// GetFirstPriced returns the oldest order waiting for a courier.
	GetFirstPriced(ctx context.Context) (*order.Order, error)

	// GetActiveByCourier returns the courier's orders that still have a stop to visit
	// (ACCEPTED, ON_WAY, COLLECTED), oldest first.
	GetActiveByCourier(ctx context.Context, courierID kernel.UUID) ([]*order.Order, error)

	// GetInFlight returns every order the delay monitor watches (ASSIGNED, ON_WAY), oldest first.
	GetInFlight(ctx context.Context) ([]*order.Order, error)
}
