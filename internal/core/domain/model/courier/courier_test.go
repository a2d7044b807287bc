package courier_test

import (
	"testing"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCourier(t *testing.T) {
	validID := kernel.NewUUID()

	t.Run("should create offline courier without position", func(t *testing.T) {
		c, err := courier.NewCourier(validID, "  Joana ")

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.True(t, c.ID().IsEqual(validID))
		assert.Equal(t, "Joana", c.Name())
		assert.False(t, c.IsOnline())
		assert.Nil(t, c.Location())
		assert.Equal(t, kernel.DefaultLocation(), c.Position())
	})

	t.Run("should return error for invalid UUID", func(t *testing.T) {
		var invalidID kernel.UUID

		c, err := courier.NewCourier(invalidID, "Joana")

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		assert.Nil(t, c)
	})

	t.Run("should return error for empty name", func(t *testing.T) {
		c, err := courier.NewCourier(validID, " ")

		require.ErrorIs(t, err, courier.ErrNameIsRequired)
		assert.Nil(t, c)
	})
}

func TestCourier_UpdateLocation(t *testing.T) {
	c, err := courier.NewCourier(kernel.NewUUID(), "Joana")
	require.NoError(t, err)

	loc, err := kernel.NewLocation(-22.9068, -43.1729)
	require.NoError(t, err)
	require.NoError(t, c.UpdateLocation(loc))

	require.NotNil(t, c.Location())
	assert.Equal(t, loc, c.Position())

	require.ErrorIs(t, c.UpdateLocation(kernel.Location{}), kernel.ErrLocationIsNotConstructed)
	assert.Equal(t, loc, c.Position())
}

func TestRestoreCourier(t *testing.T) {
	id := kernel.NewUUID()
	loc, err := kernel.NewLocation(1, 2)
	require.NoError(t, err)

	c, err := courier.RestoreCourier(id, "Marcos", &loc, true)

	require.NoError(t, err)
	assert.True(t, c.IsOnline())
	assert.Equal(t, loc, c.Position())
	assert.Equal(t, id, c.Party().ID)
	assert.Equal(t, "Marcos", c.Party().Name)
}

func TestCourier_ZeroValueIsInvalid(t *testing.T) {
	var c courier.Courier
	require.ErrorIs(t, c.Validate(), courier.ErrCourierIsNotConstructed)

	var nilCourier *courier.Courier
	require.ErrorIs(t, nilCourier.Validate(), courier.ErrCourierIsNotConstructed)
}
