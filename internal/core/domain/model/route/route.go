// Package route holds the value types produced by the route sequencer.
package route

import (
	"fmt"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// StopType tells whether the courier collects or hands over a package at a stop.
type StopType string

const (
	StopPickup  StopType = "PICKUP"
	StopDropoff StopType = "DROPOFF"
)

// StopID builds the identifier of an order's stop: "p-<order>" or "d-<order>".
func StopID(t StopType, orderID kernel.UUID) string {
	if t == StopPickup {
		return "p-" + orderID.String()
	}
	return "d-" + orderID.String()
}

// Stop is one visit in a sequenced route.
type Stop struct {
	ID       string
	Type     StopType
	OrderID  kernel.UUID
	Address  string
	Location kernel.Location

	// DistanceToNextKM is the leg from the previous position to this stop, rounded to 0.1 km.
	DistanceToNextKM float64
	// TimeToNextMinutes is the estimated leg time including the fixed handling overhead.
	TimeToNextMinutes int

	// Fallback is set when the order had no coordinates for this leg and the courier
	// position was used instead.
	Fallback bool
}

// Route is the ordered visit plan for one courier.
type Route struct {
	Stops []Stop
}

// IsEmpty reports whether there is nothing left to visit.
func (r Route) IsEmpty() bool {
	return len(r.Stops) == 0
}

// First returns the next stop to visit.
func (r Route) First() (Stop, bool) {
	if r.IsEmpty() {
		return Stop{}, false
	}
	return r.Stops[0], true
}

// TotalTimeMinutes sums the leg estimates.
func (r Route) TotalTimeMinutes() int {
	total := 0
	for _, s := range r.Stops {
		total += s.TimeToNextMinutes
	}
	return total
}

// TotalDistanceKM sums the leg distances.
func (r Route) TotalDistanceKM() float64 {
	total := 0.0
	for _, s := range r.Stops {
		total += s.DistanceToNextKM
	}
	return total
}

// FallbackStops returns the stops that were placed on the courier position.
func (r Route) FallbackStops() []Stop {
	var out []Stop
	for _, s := range r.Stops {
		if s.Fallback {
			out = append(out, s)
		}
	}
	return out
}

// TrafficLevel scales travel time estimates.
type TrafficLevel string

const (
	TrafficLow      TrafficLevel = "LOW"
	TrafficModerate TrafficLevel = "MODERATE"
	TrafficHeavy    TrafficLevel = "HEAVY"
)

var trafficMultipliers = map[TrafficLevel]float64{
	TrafficLow:      1.0,
	TrafficModerate: 1.3,
	TrafficHeavy:    1.8,
}

// ParseTrafficLevel accepts the level name in any case; an empty string means LOW.
func ParseTrafficLevel(s string) (TrafficLevel, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return TrafficLow, nil
	}
	level := TrafficLevel(s)
	if _, ok := trafficMultipliers[level]; !ok {
		return "", errs.NewValueIsInvalidErrorWithCause("traffic", fmt.Errorf("unknown traffic level %q", s))
	}
	return level, nil
}

// Multiplier returns the time factor for the level; unknown levels count as LOW.
func (t TrafficLevel) Multiplier() float64 {
	if m, ok := trafficMultipliers[t]; ok {
		return m
	}
	return trafficMultipliers[TrafficLow]
}
