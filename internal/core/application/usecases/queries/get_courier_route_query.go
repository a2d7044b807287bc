package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/pkg/guard"
)

var ErrGetCourierRouteQueryIsNotConstructed = errors.New(
	"GetCourierRouteQuery must be created via NewGetCourierRouteQuery constructor",
)

// GetCourierRouteQuery asks for the optimized stop sequence of one courier.
type GetCourierRouteQuery struct {
	courierID kernel.UUID
	traffic   route.TrafficLevel

	guard guard.ConstructorGuard
}

// NewGetCourierRouteQuery accepts the traffic level as sent by the client; an empty
// string means LOW.
func NewGetCourierRouteQuery(courierID kernel.UUID, traffic string) (GetCourierRouteQuery, error) {
	if err := courierID.Validate(); err != nil {
		return GetCourierRouteQuery{}, err
	}

	level, err := route.ParseTrafficLevel(traffic)
	if err != nil {
		return GetCourierRouteQuery{}, err
	}

	return GetCourierRouteQuery{
		courierID: courierID,
		traffic:   level,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetCourierRouteQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierRouteQueryIsNotConstructed)
}

func (q GetCourierRouteQuery) CourierID() kernel.UUID      { return q.courierID }
func (q GetCourierRouteQuery) Traffic() route.TrafficLevel { return q.traffic }

// GetCourierRouteQueryResponse carries the route together with the position it was
// computed from.
type GetCourierRouteQueryResponse struct {
	CourierID kernel.UUID
	Position  kernel.Location
	Traffic   route.TrafficLevel
	Route     route.Route
}
