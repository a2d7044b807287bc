package eventbus_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/eventbus"
	"dispatch/internal/core/domain/model/event"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var alert = event.NewDelayAlert(nil, time.Minute, time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC))

func TestBus_DispatchesByKind(t *testing.T) {
	bus := eventbus.NewBus(nil)
	var alerts, orders int

	bus.Subscribe(func(context.Context, event.Event) { alerts++ }, event.KindDelayAlert)
	bus.Subscribe(func(context.Context, event.Event) { orders++ }, event.KindOrderCreated, event.KindOrderUpdated)

	bus.Publish(t.Context(), alert)

	assert.Equal(t, 1, alerts)
	assert.Equal(t, 0, orders)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := eventbus.NewBus(nil)
	calls := 0

	unsubscribe := bus.Subscribe(func(context.Context, event.Event) { calls++ }, event.KindDelayAlert, event.KindOrderUpdated)
	require.Equal(t, 1, bus.Subscribers(event.KindDelayAlert))

	unsubscribe()
	unsubscribe()
	bus.Publish(t.Context(), alert)

	assert.Zero(t, calls)
	assert.Zero(t, bus.Subscribers(event.KindDelayAlert))
	assert.Zero(t, bus.Subscribers(event.KindOrderUpdated))
}

func TestBus_PanickingHandlerIsIsolated(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	bus := eventbus.NewBus(zap.New(core))
	delivered := false

	bus.Subscribe(func(context.Context, event.Event) { panic("boom") }, event.KindDelayAlert)
	bus.Subscribe(func(context.Context, event.Event) { delivered = true }, event.KindDelayAlert)

	assert.NotPanics(t, func() { bus.Publish(t.Context(), alert) })
	assert.True(t, delivered)
	assert.Equal(t, 1, logs.FilterMessage("event handler panicked").Len())
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, e event.Event) { m.Called(ctx, e) }

func TestFanout_PublishesToEveryTarget(t *testing.T) {
	ctx := t.Context()
	first, second := new(MockPublisher), new(MockPublisher)
	first.On("Publish", ctx, alert).Return().Once()
	second.On("Publish", ctx, alert).Return().Once()

	eventbus.Fanout{first, nil, second}.Publish(ctx, alert)

	mock.AssertExpectationsForObjects(t, first, second)
}
