package ports

import (
	"context"

	"dispatch/internal/core/domain/model/event"
	"dispatch/internal/core/domain/model/kernel"
)

// EventPublisher delivers change notifications. Handlers publish only after commit,
// so delivery is best effort: implementations report their own failures.
type EventPublisher interface {
	Publish(ctx context.Context, e event.Event)
}

// LocationStore caches the newest position reported by each courier.
type LocationStore interface {
	Save(ctx context.Context, courierID kernel.UUID, location kernel.Location) error

	// Get returns nil without error when nothing is cached.
	Get(ctx context.Context, courierID kernel.UUID) (*kernel.Location, error)
}
