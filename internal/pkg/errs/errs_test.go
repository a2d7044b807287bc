package errs_test

import (
	"errors"
	"testing"

	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("order", "o-1")

		assert.Equal(t, "order", err.ParamName)
		assert.Equal(t, "object not found: o-1", err.Error())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := errs.NewObjectNotFoundErrorWithCause("order", "o-1", cause)

		assert.Equal(t,
			"object not found: param is: order, ID is: o-1 (cause: connection reset)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	err := errs.NewValueIsInvalidErrorWithCause("price", errors.New("must be positive"))

	assert.Equal(t, "value is invalid: price (cause: must be positive)", err.Error())
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, "value is invalid: price", errs.NewValueIsInvalidError("price").Error())
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("formats bounds", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("latitude", 91.5, -90, 90)

		assert.Equal(t, "value is invalid: 91.5 is latitude, min value is -90, max value is 90", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("strips newlines from values", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("note", "left at\ndoor", 0, 10)

		assert.Contains(t, err.Error(), "left at door")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("pickupAddress")

	assert.Equal(t, "value is required: pickupAddress", err.Error())
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestVersionIsInvalidError(t *testing.T) {
	err := errs.NewVersionIsInvalidErrorWithCause("order", errors.New("stored version is 4"))

	assert.Equal(t, "version is invalid: order (cause: stored version is 4)", err.Error())
	require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	assert.Equal(t, "version is invalid: order", errs.NewVersionIsInvalidError("order").Error())
}
