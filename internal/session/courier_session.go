// Package session keeps a courier's route current while the courier is working.
package session

import (
	"context"
	"errors"
	"sync/atomic"

	"dispatch/internal/adapters/out/eventbus"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/event"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/logger"

	"go.uber.org/zap"
)

var ErrSessionAlreadyRunning = errors.New("session is already running")

type routeReader interface {
	Handle(ctx context.Context, query queries.GetCourierRouteQuery) (queries.GetCourierRouteQueryResponse, error)
}

type locationWriter interface {
	Handle(ctx context.Context, cmd commands.UpdateCourierLocationCommand) (*courier.Courier, error)
}

// Subscriber is satisfied by *eventbus.Bus.
type Subscriber interface {
	Subscribe(h eventbus.Handler, kinds ...event.Kind) (unsubscribe func())
}

// CourierSession recomputes one courier's route whenever the courier moves or one of
// the courier's orders changes, and emits every new route on Routes().
//
// The caller owns the session: Run blocks until ctx is done, then unsubscribes from
// the bus and closes the Routes channel.
type CourierSession struct {
	query     queries.GetCourierRouteQuery
	coords    <-chan kernel.Location
	routes    routeReader
	locations locationWriter
	bus       Subscriber
	out       chan queries.GetCourierRouteQueryResponse
	running   atomic.Bool
	logger    *zap.Logger
}

// NewCourierSession fails only on an invalid courier id or traffic level. A nil coords
// channel means positions arrive some other way and only order changes trigger work.
func NewCourierSession(
	courierID kernel.UUID,
	traffic string,
	coords <-chan kernel.Location,
	routes routeReader,
	locations locationWriter,
	bus Subscriber,
	log *zap.Logger,
) (*CourierSession, error) {
	query, err := queries.NewGetCourierRouteQuery(courierID, traffic)
	if err != nil {
		return nil, err
	}

	return &CourierSession{
		query:     query,
		coords:    coords,
		routes:    routes,
		locations: locations,
		bus:       bus,
		out:       make(chan queries.GetCourierRouteQueryResponse, 1),
		logger:    logger.Component(log, "courier_session").With(zap.Stringer("courierId", courierID)),
	}, nil
}

// Routes is closed when Run returns.
func (s *CourierSession) Routes() <-chan queries.GetCourierRouteQueryResponse {
	return s.out
}

// Run emits the current route immediately, then one route per trigger. Bursts of order
// changes that arrive while a route is being computed collapse into one recomputation.
func (s *CourierSession) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrSessionAlreadyRunning
	}
	defer close(s.out)

	changed := make(chan struct{}, 1)
	unsubscribe := s.bus.Subscribe(func(_ context.Context, e event.Event) {
		if !s.concerns(e) {
			return
		}
		select {
		case changed <- struct{}{}:
		default:
		}
	}, event.KindOrderCreated, event.KindOrderUpdated)
	defer unsubscribe()

	s.logger.Info("courier session started")
	defer s.logger.Info("courier session stopped")

	s.refresh(ctx)

	coords := s.coords
	for {
		select {
		case <-ctx.Done():
			return nil
		case loc, ok := <-coords:
			if !ok {
				coords = nil
				continue
			}
			s.move(ctx, loc)
			s.refresh(ctx)
		case <-changed:
			s.refresh(ctx)
		}
	}
}

func (s *CourierSession) concerns(e event.Event) bool {
	var state event.OrderState
	switch v := e.(type) {
	case event.OrderCreated:
		state = v.OrderState
	case event.OrderUpdated:
		state = v.OrderState
	default:
		return false
	}
	return state.CourierID != nil && *state.CourierID == s.query.CourierID().Bytes()
}

// move records the position. A failed write is logged and the route is still
// recomputed from the last stored position.
func (s *CourierSession) move(ctx context.Context, loc kernel.Location) {
	cmd, err := commands.NewUpdateCourierLocationCommand(s.query.CourierID(), loc)
	if err == nil {
		_, err = s.locations.Handle(ctx, cmd)
	}
	if err != nil && ctx.Err() == nil {
		s.logger.Warn("failed to record courier position", zap.Error(err))
	}
}

func (s *CourierSession) refresh(ctx context.Context) {
	resp, err := s.routes.Handle(ctx, s.query)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Error("failed to compute route", zap.Error(err))
		}
		return
	}

	select {
	case s.out <- resp:
	case <-ctx.Done():
	}
}
