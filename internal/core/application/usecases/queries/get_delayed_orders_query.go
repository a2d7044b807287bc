package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/guard"
)

var ErrGetDelayedOrdersQueryIsNotConstructed = errors.New(
	"GetDelayedOrdersQuery must be created via NewGetDelayedOrdersQuery constructor",
)

// GetDelayedOrdersQuery lists in-flight orders whose last status change is older
// than the threshold.
type GetDelayedOrdersQuery struct {
	threshold time.Duration

	guard guard.ConstructorGuard
}

// NewGetDelayedOrdersQuery uses services.DefaultDelayThreshold for a non-positive threshold.
func NewGetDelayedOrdersQuery(threshold time.Duration) GetDelayedOrdersQuery {
	if threshold <= 0 {
		threshold = services.DefaultDelayThreshold
	}
	return GetDelayedOrdersQuery{threshold: threshold, guard: guard.NewConstructorGuard()}
}

func (q GetDelayedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetDelayedOrdersQueryIsNotConstructed)
}

func (q GetDelayedOrdersQuery) Threshold() time.Duration { return q.threshold }
