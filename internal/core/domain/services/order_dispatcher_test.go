package services_test

import (
	"testing"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func onlineCourier(t *testing.T, name string, at *kernel.Location, online bool) *courier.Courier {
	t.Helper()
	c, err := courier.RestoreCourier(kernel.NewUUID(), name, at, online)
	require.NoError(t, err)
	return c
}

func TestOrderDispatcher_Dispatch(t *testing.T) {
	t.Run("should pick the nearest online courier", func(t *testing.T) {
		o := orderIn(t, order.Priced, loc(t, -23.55, -46.63), nil)
		far := onlineCourier(t, "Far", loc(t, -23.70, -46.80), true)
		near := onlineCourier(t, "Near", loc(t, -23.551, -46.631), true)
		offline := onlineCourier(t, "Offline", loc(t, -23.55, -46.63), false)

		chosen, err := services.NewOrderDispatcher().Dispatch(o, []*courier.Courier{far, offline, near}, baseTime)

		require.NoError(t, err)
		assert.True(t, chosen.IsEqual(near))
		assert.Equal(t, order.Assigned, o.Status())
		assert.True(t, o.IsAssignedTo(near.ID()))
	})

	t.Run("should return ErrCourierNotFound when nobody is online", func(t *testing.T) {
		o := orderIn(t, order.Priced, nil, nil)
		offline := onlineCourier(t, "Offline", nil, false)

		chosen, err := services.NewOrderDispatcher().Dispatch(o, []*courier.Courier{offline}, baseTime)

		require.ErrorIs(t, err, services.ErrCourierNotFound)
		assert.Nil(t, chosen)
		assert.Equal(t, order.Priced, o.Status())
	})

	t.Run("should reject orders that are not priced", func(t *testing.T) {
		o := orderIn(t, order.Requested, nil, nil)
		c := onlineCourier(t, "Joana", nil, true)

		_, err := services.NewOrderDispatcher().Dispatch(o, []*courier.Courier{c}, baseTime)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Requested, o.Status())
	})

	t.Run("should take the first online courier when pickup has no coordinates", func(t *testing.T) {
		o := orderIn(t, order.Priced, nil, nil)
		first := onlineCourier(t, "First", loc(t, 10, 10), true)
		second := onlineCourier(t, "Second", nil, true)

		chosen, err := services.NewOrderDispatcher().Dispatch(o, []*courier.Courier{first, second}, baseTime)

		require.NoError(t, err)
		assert.True(t, chosen.IsEqual(first))
	})
}
