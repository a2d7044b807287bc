package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrListCouriersQueryIsNotConstructed = errors.New(
	"ListCouriersQuery must be created via NewListCouriersQuery constructor",
)

// ListCouriersQuery retrieves every courier for the dispatcher's board.
//
// Example:
//
//	couriers, err := handler.Handle(ctx, NewListCouriersQuery(true))
//	if err != nil {
//	    return fmt.Errorf("failed to list couriers: %w", err)
//	}
type ListCouriersQuery struct {
	onlineOnly bool

	guard guard.ConstructorGuard
}

func NewListCouriersQuery(onlineOnly bool) ListCouriersQuery {
	return ListCouriersQuery{onlineOnly: onlineOnly, guard: guard.NewConstructorGuard()}
}

func (q ListCouriersQuery) Validate() error {
	return q.guard.Validate(ErrListCouriersQueryIsNotConstructed)
}

func (q ListCouriersQuery) OnlineOnly() bool { return q.onlineOnly }

// ListCouriersQueryResponse is one row of the courier board. Location is nil for a
// courier that never reported a position.
type ListCouriersQueryResponse struct {
	ID       kernel.UUID
	Name     string
	Online   bool
	Location *kernel.Location
}
