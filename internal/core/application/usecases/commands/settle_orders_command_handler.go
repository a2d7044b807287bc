package commands

import (
	"context"

	"dispatch/internal/core/domain/model/event"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// SettleOrdersCommandHandler flags every order of the batch or none of them.
type SettleOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	clock      Clock
}

func NewSettleOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	clock Clock,
) SettleOrdersCommandHandler {
	return SettleOrdersCommandHandler{uowFactory: uowFactory, publisher: publisher, clock: clock}
}

func (h SettleOrdersCommandHandler) Handle(ctx context.Context, cmd SettleOrdersCommand) ([]*order.Order, error) {
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

	repo := uow.OrderRepository()
	settled := make([]*order.Order, 0, len(cmd.OrderIDs()))

	for _, id := range cmd.OrderIDs() {
		o, err := repo.Get(ctx, id)
		if err != nil {
			return nil, err
		}

		if cmd.Party() == SettleCourier {
			err = o.MarkCourierPaid()
		} else {
			err = o.MarkPaid()
		}
		if err != nil {
			return nil, err
		}

		if err = repo.Update(ctx, o); err != nil {
			return nil, err
		}
		settled = append(settled, o)
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	now := h.clock.now()
	for _, o := range settled {
		publish(ctx, h.publisher, event.NewOrderUpdated(o, now))
	}
	return settled, nil
}
