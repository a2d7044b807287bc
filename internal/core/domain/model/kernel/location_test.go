package kernel_test

import (
	"fmt"
	"math"
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocation(t *testing.T) {
	t.Run("should accept boundary coordinates", func(t *testing.T) {
		bounds := [][2]float64{{-90, -180}, {90, 180}, {0, 0}, {-23.5505, -46.6333}}

		for _, b := range bounds {
			t.Run(fmt.Sprintf("%v", b), func(t *testing.T) {
				loc, err := kernel.NewLocation(b[0], b[1])

				require.NoError(t, err)
				assert.InDelta(t, b[0], loc.Lat(), 1e-12)
				assert.InDelta(t, b[1], loc.Lng(), 1e-12)
				require.NoError(t, loc.Validate())
			})
		}
	})

	t.Run("should reject out of range latitude", func(t *testing.T) {
		_, err := kernel.NewLocation(90.0001, 0)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "lat")
	})

	t.Run("should report both bad coordinates", func(t *testing.T) {
		_, err := kernel.NewLocation(-91, 181)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "lat")
		assert.Contains(t, err.Error(), "lng")
	})

	t.Run("should reject NaN", func(t *testing.T) {
		_, err := kernel.NewLocation(math.NaN(), 0)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestLocation_ZeroValue(t *testing.T) {
	var loc kernel.Location

	require.ErrorIs(t, loc.Validate(), errs.ErrValueIsRequired)

	valid, _ := kernel.NewLocation(1, 1)
	_, err := loc.IsEqual(valid)
	require.Error(t, err)
}

func TestLocation_DistanceKM(t *testing.T) {
	t.Run("zero for the same point", func(t *testing.T) {
		a, _ := kernel.NewLocation(-23.55, -46.63)

		assert.InDelta(t, 0, a.DistanceKM(a), 1e-9)
	})

	t.Run("one degree of latitude is about 111.19 km", func(t *testing.T) {
		a, _ := kernel.NewLocation(0, 0)
		b, _ := kernel.NewLocation(1, 0)

		assert.InDelta(t, 111.19, a.DistanceKM(b), 0.01)
	})

	t.Run("symmetric", func(t *testing.T) {
		a, _ := kernel.NewLocation(-23.5505, -46.6333)
		b, _ := kernel.NewLocation(-23.56, -46.64)

		assert.InDelta(t, a.DistanceKM(b), b.DistanceKM(a), 1e-12)
		assert.Greater(t, a.DistanceKM(b), 0.0)
	})
}

func TestDefaultLocation(t *testing.T) {
	loc := kernel.DefaultLocation()

	require.NoError(t, loc.Validate())
	assert.InDelta(t, -23.5505, loc.Lat(), 1e-9)
	assert.InDelta(t, -46.6333, loc.Lng(), 1e-9)
}

func TestLocation_IsEqual(t *testing.T) {
	a, _ := kernel.NewLocation(10, 20)
	b, _ := kernel.NewLocation(10, 20)
	c, _ := kernel.NewLocation(10, 21)

	eq, err := a.IsEqual(b)
	require.NoError(t, err)
	assert.True(t, eq)

	eq, err = a.IsEqual(c)
	require.NoError(t, err)
	assert.False(t, eq)
}
