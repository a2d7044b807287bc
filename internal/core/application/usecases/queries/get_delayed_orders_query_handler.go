package queries

import (
	"context"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

type GetDelayedOrdersQueryHandler struct {
	orders  ports.OrderRepository
	monitor services.DelayMonitor
	clock   Clock
}

func NewGetDelayedOrdersQueryHandler(orders ports.OrderRepository, clock Clock) GetDelayedOrdersQueryHandler {
	return GetDelayedOrdersQueryHandler{
		orders:  orders,
		monitor: services.NewDelayMonitor(),
		clock:   clock,
	}
}

// Handle evaluates the delay rule at the handler clock's current time.
func (h GetDelayedOrdersQueryHandler) Handle(ctx context.Context, query GetDelayedOrdersQuery) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	inFlight, err := h.orders.GetInFlight(ctx)
	if err != nil {
		return nil, err
	}

	return h.monitor.DelayedOrders(inFlight, h.clock.now(), query.Threshold()), nil
}
