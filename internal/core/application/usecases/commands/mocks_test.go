package commands_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/event"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockOrderRepository) List(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetFirstPriced(ctx context.Context) (*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetActiveByCourier(ctx context.Context, courierID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, courierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetInFlight(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockCourierRepository struct{ mock.Mock }

func (m *MockCourierRepository) Add(ctx context.Context, c *courier.Courier) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCourierRepository) Update(ctx context.Context, c *courier.Courier) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) GetAllOnline(ctx context.Context) ([]*courier.Courier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*courier.Courier), args.Error(1)
}

type MockClientRepository struct{ mock.Mock }

func (m *MockClientRepository) FixedPrice(ctx context.Context, clientID kernel.UUID) (*float64, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*float64), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) CourierRepository() ports.CourierRepository {
	return m.Called().Get(0).(ports.CourierRepository)
}

func (m *MockUoW) ClientRepository() ports.ClientRepository {
	return m.Called().Get(0).(ports.ClientRepository)
}

// uowFactory adapts one MockUoW to every factory flavour the handlers accept.
type uowFactory struct{ uow *MockUoW }

func (f uowFactory) Create() commands.UoW { return f.uow }

type orderUoWFactory struct{ uow *MockUoW }

func (f orderUoWFactory) Create() commands.OrderUoW { return f.uow }

type courierUoWFactory struct{ uow *MockUoW }

func (f courierUoWFactory) Create() commands.CourierUoW { return f.uow }

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, e event.Event) {
	m.Called(ctx, e)
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

// fixture bundles the mocks most handler tests need.
type fixture struct {
	uow       *MockUoW
	orders    *MockOrderRepository
	couriers  *MockCourierRepository
	clients   *MockClientRepository
	publisher *MockPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		uow:       new(MockUoW),
		orders:    new(MockOrderRepository),
		couriers:  new(MockCourierRepository),
		clients:   new(MockClientRepository),
		publisher: new(MockPublisher),
	}
	f.uow.On("OrderRepository").Return(f.orders).Maybe()
	f.uow.On("CourierRepository").Return(f.couriers).Maybe()
	f.uow.On("ClientRepository").Return(f.clients).Maybe()
	f.uow.On("Rollback", mock.Anything).Return(nil).Maybe()
	t.Cleanup(func() {
		f.uow.AssertExpectations(t)
		f.orders.AssertExpectations(t)
		f.couriers.AssertExpectations(t)
		f.clients.AssertExpectations(t)
		f.publisher.AssertExpectations(t)
	})
	return f
}

func (f *fixture) expectTx(ctx context.Context) {
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
}

func party(t *testing.T, name string) order.Party {
	t.Helper()
	return order.Party{ID: kernel.NewUUID(), Name: name}
}

func waypoint(t *testing.T, address string, lat, lng float64) order.Waypoint {
	t.Helper()
	loc, err := kernel.NewLocation(lat, lng)
	require.NoError(t, err)
	w, err := order.NewWaypoint(address, &loc)
	require.NoError(t, err)
	return w
}

func requestedOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), party(t, "Loja"),
		waypoint(t, "Rua A, 1", -23.55, -46.63), waypoint(t, "Rua B, 2", -23.56, -46.64),
		"", nil, fixedNow.Add(-time.Hour))
	require.NoError(t, err)
	return o
}

func pricedOrder(t *testing.T) *order.Order {
	t.Helper()
	o := requestedOrder(t)
	require.NoError(t, o.SetPrice(12, fixedNow.Add(-time.Hour)))
	return o
}

func assignedOrder(t *testing.T, courierParty order.Party) *order.Order {
	t.Helper()
	o := pricedOrder(t)
	require.NoError(t, o.Assign(courierParty, fixedNow.Add(-time.Hour)))
	return o
}

func onlineCourierAt(t *testing.T, name string, lat, lng float64) *courier.Courier {
	t.Helper()
	loc, err := kernel.NewLocation(lat, lng)
	require.NoError(t, err)
	c, err := courier.RestoreCourier(kernel.NewUUID(), name, &loc, true)
	require.NoError(t, err)
	return c
}

func commandCouriers(cs ...*courier.Courier) []*courier.Courier {
	return append([]*courier.Courier{}, cs...)
}
