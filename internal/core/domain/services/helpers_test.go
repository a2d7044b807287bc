package services_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

var pathTo = map[order.Status][]order.Status{
	order.Requested: {},
	order.Priced:    {order.Priced},
	order.Assigned:  {order.Priced, order.Assigned},
	order.Accepted:  {order.Priced, order.Assigned, order.Accepted},
	order.OnWay:     {order.Priced, order.Assigned, order.OnWay},
	order.Collected: {order.Priced, order.Assigned, order.OnWay, order.Collected},
	order.Delivered: {order.Priced, order.Assigned, order.OnWay, order.Collected, order.Delivered},
	order.Canceled:  {order.Canceled},
}

func loc(t *testing.T, lat, lng float64) *kernel.Location {
	t.Helper()
	l, err := kernel.NewLocation(lat, lng)
	require.NoError(t, err)
	return &l
}

// orderIn builds an order and walks it to status; every step is stamped at baseTime.
func orderIn(t *testing.T, status order.Status, pickup, dropoff *kernel.Location) *order.Order {
	t.Helper()

	p, err := order.NewWaypoint("pickup street", pickup)
	require.NoError(t, err)
	d, err := order.NewWaypoint("dropoff street", dropoff)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), order.Party{ID: kernel.NewUUID(), Name: "Loja"}, p, d, "", nil, baseTime)
	require.NoError(t, err)

	for _, next := range pathTo[status] {
		switch next {
		case order.Priced:
			err = o.SetPrice(10, baseTime)
		case order.Assigned:
			err = o.Assign(order.Party{ID: kernel.NewUUID(), Name: "Joana"}, baseTime)
		case order.Accepted:
			err = o.Acknowledge(baseTime)
		case order.OnWay:
			err = o.Accept(baseTime)
		case order.Collected:
			err = o.ConfirmPickup(baseTime)
		case order.Delivered:
			err = o.ConfirmDelivery(baseTime)
		case order.Canceled:
			err = o.Cancel("", baseTime)
		}
		require.NoError(t, err)
	}
	require.Equal(t, status, o.Status())
	return o
}
