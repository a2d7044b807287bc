// Package positions resolves where a courier currently is.
package positions

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	"go.uber.org/zap"
)

// Resolver looks a courier's position up in the cache first, then in the courier
// record, and finally falls back to kernel.DefaultLocation.
type Resolver struct {
	cache ports.LocationStore
	log   *zap.Logger
}

// NewResolver builds a resolver; cache may be nil when no cache is configured.
func NewResolver(cache ports.LocationStore, log *zap.Logger) Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return Resolver{cache: cache, log: log}
}

// Resolve never fails on a cache outage; it only fails when the courier lookup fails.
func (r Resolver) Resolve(ctx context.Context, couriers ports.CourierRepository, courierID kernel.UUID) (kernel.Location, error) {
	if r.cache != nil {
		loc, err := r.cache.Get(ctx, courierID)
		switch {
		case err != nil:
			r.log.Warn("location cache read failed", zap.Stringer("courierId", courierID), zap.Error(err))
		case loc != nil:
			return *loc, nil
		}
	}

	c, err := couriers.Get(ctx, courierID)
	if err != nil {
		return kernel.Location{}, err
	}
	return c.Position(), nil
}
