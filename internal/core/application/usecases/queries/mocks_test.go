package queries_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var queryNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

// MockOrderRepository implements only the read side the queries call; writes panic.
type MockOrderRepository struct {
	mock.Mock
	ports.OrderRepository
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetActiveByCourier(ctx context.Context, courierID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, courierID)
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetInFlight(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockCourierRepository struct {
	mock.Mock
	ports.CourierRepository
}

func (m *MockCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

type MockLocationStore struct{ mock.Mock }

func (m *MockLocationStore) Save(ctx context.Context, courierID kernel.UUID, loc kernel.Location) error {
	return m.Called(ctx, courierID, loc).Error(0)
}

func (m *MockLocationStore) Get(ctx context.Context, courierID kernel.UUID) (*kernel.Location, error) {
	args := m.Called(ctx, courierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kernel.Location), args.Error(1)
}

func location(t *testing.T, lat, lng float64) *kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(lat, lng)
	require.NoError(t, err)
	return &loc
}

// collectingOrder builds an order assigned to courier and already on its way, so it
// contributes a pickup and a dropoff stop.
func collectingOrder(t *testing.T, courier order.Party, pickup, dropoff *kernel.Location, at time.Time) *order.Order {
	t.Helper()
	p, err := order.NewWaypoint("pickup", pickup)
	require.NoError(t, err)
	d, err := order.NewWaypoint("dropoff", dropoff)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), order.Party{ID: kernel.NewUUID(), Name: "Loja"}, p, d, "", nil, at)
	require.NoError(t, err)
	require.NoError(t, o.SetPrice(10, at))
	require.NoError(t, o.Assign(courier, at))
	require.NoError(t, o.Accept(at))
	return o
}
