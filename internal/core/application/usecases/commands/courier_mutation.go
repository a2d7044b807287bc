package commands

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// updateCourier is the courier counterpart of updateOrder.
func updateCourier(
	ctx context.Context,
	uowFactory CourierUoWFactory,
	courierID kernel.UUID,
	mutate func(c *courier.Courier) error,
) (*courier.Courier, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.CourierRepository()
	c, err := repo.Get(ctx, courierID)
	if err != nil {
		return nil, err
	}

	if err = mutate(c); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return c, nil
}
