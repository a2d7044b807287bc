package services

import (
	"errors"
	"math"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// ErrCourierNotFound is returned when no online courier is available for order dispatch.
var ErrCourierNotFound = errors.New("courier not found")

// OrderDispatcher picks a courier for a priced order when the dispatcher does not
// name one explicitly.
//
// Business rules:
//   - Orders must be valid and PRICED
//   - Only online couriers are considered
//   - The courier closest to the pickup wins; ties go to the first courier given
//   - When the pickup has no coordinates the first online courier wins
//
// Example usage:
//
//	chosen, err := services.NewOrderDispatcher().Dispatch(o, couriers, time.Now())
//	if errors.Is(err, services.ErrCourierNotFound) {
//	    // Nobody online
//	}
type OrderDispatcher struct{}

func NewOrderDispatcher() OrderDispatcher {
	return OrderDispatcher{}
}

// Dispatch assigns o to the best courier and returns that courier.
func (d OrderDispatcher) Dispatch(o *order.Order, couriers []*courier.Courier, now time.Time) (*courier.Courier, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if _, err := o.Status().TransitionTo(order.Assigned); err != nil {
		return nil, err
	}

	best, err := d.findBestCourier(o.Pickup(), couriers)
	if err != nil {
		return nil, err
	}

	if err = o.Assign(best.Party(), now); err != nil {
		return nil, err
	}
	return best, nil
}

func (d OrderDispatcher) findBestCourier(pickup order.Waypoint, couriers []*courier.Courier) (*courier.Courier, error) {
	var (
		best     *courier.Courier
		bestDist = math.MaxFloat64
	)

	for _, c := range couriers {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if !c.IsOnline() {
			continue
		}

		dist := distanceToPickup(c.Position(), pickup)
		if dist < bestDist {
			bestDist = dist
			best = c
		}
	}

	if best == nil {
		return nil, ErrCourierNotFound
	}
	return best, nil
}

func distanceToPickup(from kernel.Location, pickup order.Waypoint) float64 {
	if !pickup.HasLocation() {
		return 0
	}
	return from.DistanceKM(*pickup.Location)
}
