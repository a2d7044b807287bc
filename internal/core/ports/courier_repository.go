// Package ports defines the contracts between the dispatch core and its adapters.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates.
type CourierRepository interface {
	Add(ctx context.Context, courier *courier.Courier) error
	Update(ctx context.Context, courier *courier.Courier) error

	// Get retrieves a courier by id or returns errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetAllOnline returns couriers available for dispatch, ordered by name.
	GetAllOnline(ctx context.Context) ([]*courier.Courier, error)
}

// ClientRepository reads account data owned by the external user store.
type ClientRepository interface {
	// FixedPrice returns the client's standing delivery price, or nil when the client
	// has none or is unknown.
	FixedPrice(ctx context.Context, clientID kernel.UUID) (*float64, error)
}
