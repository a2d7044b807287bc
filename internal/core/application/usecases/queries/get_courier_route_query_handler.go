package queries

import (
	"context"

	"dispatch/internal/core/application/positions"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"

	"go.uber.org/zap"
)

// GetCourierRouteQueryHandler runs the route sequencer over the courier's active
// orders, starting from the courier's last known position.
//
// Example:
//
//	q, _ := NewGetCourierRouteQuery(courierID, "heavy")
//	resp, err := handler.Handle(ctx, q)
//	if err != nil {
//	    return err
//	}
//	next, ok := resp.Route.First()
type GetCourierRouteQueryHandler struct {
	orders    ports.OrderRepository
	couriers  ports.CourierRepository
	positions positions.Resolver
	sequencer services.RouteSequencer
	log       *zap.Logger
}

func NewGetCourierRouteQueryHandler(
	orders ports.OrderRepository,
	couriers ports.CourierRepository,
	resolver positions.Resolver,
	log *zap.Logger,
) GetCourierRouteQueryHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return GetCourierRouteQueryHandler{
		orders:    orders,
		couriers:  couriers,
		positions: resolver,
		sequencer: services.NewRouteSequencer(),
		log:       log,
	}
}

// Handle returns an empty route, never an error, when the courier has nothing to do.
// Stops placed at a fallback coordinate are logged as data-quality warnings.
func (h GetCourierRouteQueryHandler) Handle(
	ctx context.Context,
	query GetCourierRouteQuery,
) (GetCourierRouteQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCourierRouteQueryResponse{}, err
	}

	position, err := h.positions.Resolve(ctx, h.couriers, query.CourierID())
	if err != nil {
		return GetCourierRouteQueryResponse{}, err
	}

	active, err := h.orders.GetActiveByCourier(ctx, query.CourierID())
	if err != nil {
		return GetCourierRouteQueryResponse{}, err
	}

	r := h.sequencer.Optimize(position, active, query.Traffic())

	for _, stop := range r.FallbackStops() {
		h.log.Warn("stop has no coordinates, placed at fallback location",
			zap.Stringer("courierId", query.CourierID()),
			zap.String("stopId", stop.ID),
			zap.String("address", stop.Address),
		)
	}

	return GetCourierRouteQueryResponse{
		CourierID: query.CourierID(),
		Position:  position,
		Traffic:   query.Traffic(),
		Route:     r,
	}, nil
}
