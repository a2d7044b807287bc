package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/event"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// AssignCourierCommandHandler matches a priced order with a courier.
// The order update runs in one transaction; a concurrent assignment of the same
// order loses with errs.VersionIsInvalidError.
//
// Example:
//
//	handler := NewAssignCourierCommandHandler(uowFactory, publisher, nil)
//	o, err := handler.Handle(ctx, NewAutoAssignCourierCommand())
//	switch {
//	case errors.Is(err, ErrNoOrderFound):
//	    log.Println("No pending orders")
//	case errors.Is(err, ErrNoFreeCouriersFound):
//	    log.Println("All couriers are offline")
//	case err != nil:
//	    log.Printf("Assignment failed: %v", err)
//	}
type AssignCourierCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	clock      Clock
}

func NewAssignCourierCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	clock Clock,
) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
	}
}

func (h AssignCourierCommandHandler) Handle(ctx context.Context, cmd AssignCourierCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	ordersRepo := uow.OrderRepository()

	o, err := h.loadOrder(ctx, ordersRepo, cmd)
	if err != nil {
		return nil, err
	}

	now := h.clock.now()
	if cmd.CourierID() != nil {
		var c *courier.Courier
		c, err = courierRepo.Get(ctx, *cmd.CourierID())
		if err != nil {
			return nil, err
		}
		err = o.Assign(c.Party(), now)
	} else {
		err = h.dispatch(ctx, courierRepo, o, now)
	}
	if err != nil {
		return nil, err
	}

	if err = ordersRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publish(ctx, h.publisher, event.NewOrderUpdated(o, now))
	return o, nil
}

func (h AssignCourierCommandHandler) loadOrder(
	ctx context.Context,
	repo ports.OrderRepository,
	cmd AssignCourierCommand,
) (*order.Order, error) {
	if cmd.OrderID() != nil {
		return repo.Get(ctx, *cmd.OrderID())
	}

	o, err := repo.GetFirstPriced(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrNoOrderFound
	}
	return o, err
}

func (h AssignCourierCommandHandler) dispatch(
	ctx context.Context,
	repo ports.CourierRepository,
	o *order.Order,
	now time.Time,
) error {
	couriers, err := repo.GetAllOnline(ctx)
	if err != nil {
		return err
	}
	if len(couriers) == 0 {
		return ErrNoFreeCouriersFound
	}

	_, err = services.NewOrderDispatcher().Dispatch(o, couriers, now)
	if errors.Is(err, services.ErrCourierNotFound) {
		return ErrNoFreeCouriersFound
	}
	return err
}
