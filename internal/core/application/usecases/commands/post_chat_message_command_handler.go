package commands

import (
	"context"

	"dispatch/internal/core/domain/model/event"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// PostChatMessageCommandHandler stores a chat message. Clients may only write on
// their own orders and couriers only on orders assigned to them.
type PostChatMessageCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	clock      Clock
}

func NewPostChatMessageCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	clock Clock,
) PostChatMessageCommandHandler {
	return PostChatMessageCommandHandler{uowFactory: uowFactory, publisher: publisher, clock: clock}
}

func (h PostChatMessageCommandHandler) Handle(ctx context.Context, cmd PostChatMessageCommand) (order.ChatMessage, error) {
	if err := cmd.Validate(); err != nil {
		return order.ChatMessage{}, err
	}

	var msg order.ChatMessage
	_, err := updateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		if err := checkChatAccess(o, cmd); err != nil {
			return err
		}

		var err error
		msg, err = order.NewChatMessage(cmd.MessageID(), cmd.Sender(), cmd.Role(), cmd.Content(), h.clock.now())
		if err != nil {
			return err
		}
		return o.AddChatMessage(msg)
	})
	if err != nil {
		return order.ChatMessage{}, err
	}

	publish(ctx, h.publisher, event.NewChatMessagePosted(cmd.OrderID().Bytes(), msg))
	return msg, nil
}

func checkChatAccess(o *order.Order, cmd PostChatMessageCommand) error {
	switch cmd.Role() {
	case kernel.RoleClient:
		if !o.Client().ID.IsEqual(cmd.Sender().ID) {
			return ErrOrderDoesNotBelongToClient
		}
	case kernel.RoleCourier:
		if !o.IsAssignedTo(cmd.Sender().ID) {
			return ErrOrderNotAssignedToCourier
		}
	}
	return nil
}
