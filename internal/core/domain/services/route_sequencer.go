package services

import (
	"math"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/route"
)

const (
	// CityAverageSpeedKMH is the base speed of the travel time heuristic.
	CityAverageSpeedKMH = 30.0
	// StopHandlingMinutes is added to every leg for parking and handoff.
	StopHandlingMinutes = 2
)

// RouteSequencer orders a courier's pending pickups and dropoffs with a greedy
// nearest-neighbour walk under the pickup-before-dropoff constraint.
//
// Business rules:
//   - ACCEPTED and ON_WAY orders contribute a pickup and a dropoff
//   - COLLECTED orders contribute only a dropoff, eligible immediately
//   - any other status contributes nothing
//   - a dropoff becomes eligible once its pickup is on the route
//   - among eligible stops the nearest wins; on equal distance the one that
//     came first in the input wins
//   - a missing coordinate is replaced by the courier's position and the stop
//     is flagged as Fallback
//
// The sequencer is stateless and safe for concurrent use.
//
// Example usage:
//
//	r := services.NewRouteSequencer().Optimize(courierPosition, activeOrders, route.TrafficLow)
//	if r.IsEmpty() {
//	    // Nothing to visit
//	}
//	next, _ := r.First()
type RouteSequencer struct{}

func NewRouteSequencer() RouteSequencer {
	return RouteSequencer{}
}

type candidate struct {
	stop      route.Stop
	orderID   kernel.UUID
	remaining bool
}

// Optimize returns the visit plan starting at current. Empty input yields an empty route.
func (s RouteSequencer) Optimize(current kernel.Location, orders []*order.Order, traffic route.TrafficLevel) route.Route {
	pool, collected := s.candidates(current, orders)

	var (
		result = route.Route{Stops: make([]route.Stop, 0, len(pool))}
		cursor = current
		left   = len(pool)
	)

	for left > 0 {
		best := -1
		bestDist := math.Inf(1)

		for i := range pool {
			c := &pool[i]
			if !c.remaining {
				continue
			}
			if c.stop.Type == route.StopDropoff && !collected[c.orderID] {
				continue
			}

			d := cursor.DistanceKM(c.stop.Location)
			if d < bestDist {
				bestDist = d
				best = i
			}
		}

		if best < 0 {
			break
		}

		selected := &pool[best]
		selected.remaining = false
		left--

		stop := selected.stop
		stop.DistanceToNextKM = roundToTenth(bestDist)
		stop.TimeToNextMinutes = EstimateMinutes(bestDist, traffic)
		result.Stops = append(result.Stops, stop)

		cursor = stop.Location
		if stop.Type == route.StopPickup {
			collected[selected.orderID] = true
		}
	}

	return result
}

// EstimateMinutes converts a leg distance into minutes: travel at CityAverageSpeedKMH
// scaled by traffic, rounded up, plus StopHandlingMinutes.
func EstimateMinutes(distanceKM float64, traffic route.TrafficLevel) int {
	travel := distanceKM / CityAverageSpeedKMH * 60 * traffic.Multiplier()
	return int(math.Ceil(travel)) + StopHandlingMinutes
}

func (s RouteSequencer) candidates(current kernel.Location, orders []*order.Order) ([]candidate, map[kernel.UUID]bool) {
	pool := make([]candidate, 0, 2*len(orders))
	collected := make(map[kernel.UUID]bool, len(orders))

	for _, o := range orders {
		if o == nil {
			continue
		}
		status := o.Status()

		if status.HasPendingPickup() {
			pool = append(pool, newCandidate(route.StopPickup, o.ID(), o.Pickup(), current))
		}
		if status.HasPendingDropoff() {
			pool = append(pool, newCandidate(route.StopDropoff, o.ID(), o.Dropoff(), current))
		}
		if status == order.Collected {
			collected[o.ID()] = true
		}
	}

	return pool, collected
}

func newCandidate(t route.StopType, orderID kernel.UUID, w order.Waypoint, fallback kernel.Location) candidate {
	stop := route.Stop{
		ID:       route.StopID(t, orderID),
		Type:     t,
		OrderID:  orderID,
		Address:  w.Address,
		Location: fallback,
		Fallback: true,
	}
	if w.HasLocation() {
		stop.Location = *w.Location
		stop.Fallback = false
	}
	return candidate{stop: stop, orderID: orderID, remaining: true}
}

func roundToTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
