package commands_test

import (
	"errors"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/event"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCreateOrderCommand(t *testing.T, client order.Party) commands.CreateOrderCommand {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), client,
		waypoint(t, "Rua A, 1", -23.55, -46.63), waypoint(t, "Rua B, 2", -23.56, -46.64), " fragile ")
	require.NoError(t, err)
	return cmd
}

func TestCreateOrderCommandHandler_Handle_Requested(t *testing.T) {
	ctx := t.Context()
	f := newFixture(t)
	client := party(t, "Loja")
	cmd := newCreateOrderCommand(t, client)

	f.expectTx(ctx)
	f.clients.On("FixedPrice", ctx, client.ID).Return(nil, nil).Once()
	f.orders.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	f.publisher.On("Publish", ctx, mock.AnythingOfType("event.OrderCreated")).Return().Once()

	h := commands.NewCreateOrderCommandHandler(uowFactory{f.uow}, f.publisher, fixedClock)
	o, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Requested, o.Status())
	assert.Equal(t, "fragile", o.Description())
	assert.Equal(t, fixedNow, o.CreatedAt())
	assert.Nil(t, o.Price())
}

func TestCreateOrderCommandHandler_Handle_FixedPriceSeedsPriced(t *testing.T) {
	ctx := t.Context()
	f := newFixture(t)
	client := party(t, "Farmácia")
	cmd := newCreateOrderCommand(t, client)
	price := 7.5

	f.expectTx(ctx)
	f.clients.On("FixedPrice", ctx, client.ID).Return(&price, nil).Once()
	f.orders.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	f.publisher.On("Publish", ctx, mock.MatchedBy(func(e event.Event) bool {
		created, ok := e.(event.OrderCreated)
		return ok && created.Status == "PRICED"
	})).Return().Once()

	h := commands.NewCreateOrderCommandHandler(uowFactory{f.uow}, f.publisher, fixedClock)
	o, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Priced, o.Status())
	require.NotNil(t, o.Price())
	assert.InDelta(t, 7.5, *o.Price(), 1e-9)
}

func TestCreateOrderCommandHandler_Handle_AddErrorDoesNotPublish(t *testing.T) {
	ctx := t.Context()
	f := newFixture(t)
	client := party(t, "Loja")
	cmd := newCreateOrderCommand(t, client)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.clients.On("FixedPrice", ctx, client.ID).Return(nil, nil).Once()
	f.orders.On("Add", ctx, mock.Anything).Return(errors.New("add error")).Once()

	h := commands.NewCreateOrderCommandHandler(uowFactory{f.uow}, f.publisher, fixedClock)
	o, err := h.Handle(ctx, cmd)

	require.EqualError(t, err, "add error")
	assert.Nil(t, o)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	f := newFixture(t)
	f.uow.On("Begin", ctx).Return(errors.New("begin error")).Once()

	h := commands.NewCreateOrderCommandHandler(uowFactory{f.uow}, f.publisher, fixedClock)
	_, err := h.Handle(ctx, newCreateOrderCommand(t, party(t, "Loja")))

	require.EqualError(t, err, "begin error")
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	h := commands.NewCreateOrderCommandHandler(uowFactory{new(MockUoW)}, nil, fixedClock)

	_, err := h.Handle(t.Context(), commands.CreateOrderCommand{})

	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
}

func TestCreateDirectOrderCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	f := newFixture(t)
	client := party(t, "Loja")
	dispatcher := party(t, "Dispatch")

	cmd, err := commands.NewCreateDirectOrderCommand(kernel.NewUUID(), client, dispatcher,
		waypoint(t, "A", 1, 1), waypoint(t, "B", 2, 2), "")
	require.NoError(t, err)

	f.expectTx(ctx)
	f.clients.On("FixedPrice", ctx, client.ID).Return(nil, nil).Once()
	f.orders.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	f.publisher.On("Publish", ctx, mock.AnythingOfType("event.OrderCreated")).Return().Once()

	h := commands.NewCreateDirectOrderCommandHandler(uowFactory{f.uow}, f.publisher, fixedClock)
	o, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Assigned, o.Status())
	assert.True(t, o.IsAssignedTo(dispatcher.ID))
	assert.InDelta(t, order.DirectOrderDefaultPrice, *o.Price(), 1e-9)
	assert.Equal(t, 2, o.HistoryLen())
}
