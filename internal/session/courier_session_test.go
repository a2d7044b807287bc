package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"dispatch/internal/adapters/out/eventbus"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/event"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const waitFor = 2 * time.Second

type fakeRoutes struct {
	mu    sync.Mutex
	calls int
	last  *kernel.Location
	err   error
}

func (f *fakeRoutes) Handle(_ context.Context, q queries.GetCourierRouteQuery) (queries.GetCourierRouteQueryResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return queries.GetCourierRouteQueryResponse{}, f.err
	}
	resp := queries.GetCourierRouteQueryResponse{CourierID: q.CourierID(), Traffic: q.Traffic()}
	if f.last != nil {
		resp.Position = *f.last
	}
	return resp, nil
}

func (f *fakeRoutes) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeLocations feeds written positions back into fakeRoutes, like the cache does.
type fakeLocations struct {
	routes *fakeRoutes
	err    error
}

func (f *fakeLocations) Handle(_ context.Context, cmd commands.UpdateCourierLocationCommand) (*courier.Courier, error) {
	if f.err != nil {
		return nil, f.err
	}
	loc := cmd.Location()
	f.routes.mu.Lock()
	f.routes.last = &loc
	f.routes.mu.Unlock()
	return nil, nil
}

type harness struct {
	courierID kernel.UUID
	bus       *eventbus.Bus
	routes    *fakeRoutes
	coords    chan kernel.Location
	session   *session.CourierSession
	cancel    context.CancelFunc
	done      chan error
}

func start(t *testing.T, locErr error) *harness {
	t.Helper()
	h := &harness{
		courierID: kernel.NewUUID(),
		bus:       eventbus.NewBus(zap.NewNop()),
		routes:    &fakeRoutes{},
		coords:    make(chan kernel.Location),
		done:      make(chan error, 1),
	}
	s, err := session.NewCourierSession(h.courierID, "heavy", h.coords, h.routes,
		&fakeLocations{routes: h.routes, err: locErr}, h.bus, zap.NewNop())
	require.NoError(t, err)
	h.session = s

	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	go func() { h.done <- s.Run(ctx) }()
	t.Cleanup(cancel)
	return h
}

func (h *harness) next(t *testing.T) queries.GetCourierRouteQueryResponse {
	t.Helper()
	select {
	case r, ok := <-h.session.Routes():
		require.True(t, ok, "routes channel closed")
		return r
	case <-time.After(waitFor):
		t.Fatal("no route emitted")
		return queries.GetCourierRouteQueryResponse{}
	}
}

func (h *harness) stop(t *testing.T) {
	t.Helper()
	h.cancel()
	select {
	case err := <-h.done:
		require.NoError(t, err)
	case <-time.After(waitFor):
		t.Fatal("session did not stop")
	}
}

func orderFor(t *testing.T, courierID kernel.UUID) *order.Order {
	t.Helper()
	pickup, err := order.NewWaypoint("Rua A, 10", nil)
	require.NoError(t, err)
	dropoff, err := order.NewWaypoint("Rua B, 99", nil)
	require.NoError(t, err)
	price := 10.0
	o, err := order.NewOrder(kernel.NewUUID(), order.Party{ID: kernel.NewUUID(), Name: "Ana"},
		pickup, dropoff, "", &price, time.Now())
	require.NoError(t, err)
	require.NoError(t, o.Assign(order.Party{ID: courierID, Name: "Rui"}, time.Now()))
	return o
}

func TestNewCourierSession_RejectsUnknownTraffic(t *testing.T) {
	_, err := session.NewCourierSession(kernel.NewUUID(), "gridlock", nil, &fakeRoutes{}, nil,
		eventbus.NewBus(zap.NewNop()), zap.NewNop())

	assert.Error(t, err)
}

func TestCourierSession_EmitsInitialRoute(t *testing.T) {
	h := start(t, nil)

	r := h.next(t)

	assert.True(t, r.CourierID.IsEqual(h.courierID))
	assert.EqualValues(t, "HEAVY", r.Traffic)
	h.stop(t)
}

func TestCourierSession_RecomputesOnMovement(t *testing.T) {
	h := start(t, nil)
	h.next(t)

	loc, err := kernel.NewLocation(-23.55, -46.63)
	require.NoError(t, err)
	h.coords <- loc

	r := h.next(t)
	assert.Equal(t, loc, r.Position)
	h.stop(t)
}

func TestCourierSession_RecomputesWhenPositionWriteFails(t *testing.T) {
	h := start(t, errors.New("redis down"))
	h.next(t)

	loc, err := kernel.NewLocation(1, 1)
	require.NoError(t, err)
	h.coords <- loc

	h.next(t)
	assert.Equal(t, 2, h.routes.Calls())
	h.stop(t)
}

func TestCourierSession_RecomputesOnOwnOrderChangesOnly(t *testing.T) {
	h := start(t, nil)
	h.next(t)
	ctx := context.Background()

	h.bus.Publish(ctx, event.NewOrderUpdated(orderFor(t, kernel.NewUUID()), time.Now()))
	h.bus.Publish(ctx, event.CourierUpdated{CourierID: h.courierID.Bytes()})
	h.bus.Publish(ctx, event.NewOrderCreated(orderFor(t, h.courierID), time.Now()))

	h.next(t)
	h.stop(t)
	assert.Equal(t, 2, h.routes.Calls())
}

func TestCourierSession_StopUnsubscribesAndClosesRoutes(t *testing.T) {
	h := start(t, nil)
	h.next(t)
	require.Equal(t, 1, h.bus.Subscribers(event.KindOrderUpdated))

	h.stop(t)

	assert.Zero(t, h.bus.Subscribers(event.KindOrderCreated))
	assert.Zero(t, h.bus.Subscribers(event.KindOrderUpdated))
	_, ok := <-h.session.Routes()
	assert.False(t, ok)
}

func TestCourierSession_StopWhileConsumerIsAway(t *testing.T) {
	h := start(t, nil)
	h.next(t)

	// Fill the buffer and leave the session blocked on the next send.
	loc, err := kernel.NewLocation(2, 2)
	require.NoError(t, err)
	h.coords <- loc
	h.coords <- loc

	h.stop(t)
}

func TestCourierSession_RunOnce(t *testing.T) {
	h := start(t, nil)
	h.next(t)

	err := h.session.Run(context.Background())

	assert.ErrorIs(t, err, session.ErrSessionAlreadyRunning)
	h.stop(t)
}

func TestCourierSession_RouteErrorsAreSkipped(t *testing.T) {
	h := start(t, nil)
	h.next(t)

	h.routes.mu.Lock()
	h.routes.err = errors.New("db down")
	h.routes.mu.Unlock()
	h.bus.Publish(context.Background(), event.NewOrderUpdated(orderFor(t, h.courierID), time.Now()))

	require.Eventually(t, func() bool { return h.routes.Calls() == 2 }, waitFor, 10*time.Millisecond)
	h.stop(t)
}
