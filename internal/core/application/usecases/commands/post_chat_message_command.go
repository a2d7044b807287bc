package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrPostChatMessageCommandIsNotConstructed = errors.New(
	"PostChatMessageCommand must be created via NewPostChatMessageCommand constructor",
)

// PostChatMessageCommand appends a line to an order's conversation.
type PostChatMessageCommand struct {
	messageID kernel.UUID
	orderID   kernel.UUID
	sender    order.Party
	role      kernel.Role
	content   string

	guard guard.ConstructorGuard
}

func NewPostChatMessageCommand(
	messageID kernel.UUID,
	orderID kernel.UUID,
	sender order.Party,
	role kernel.Role,
	content string,
) (PostChatMessageCommand, error) {
	content = strings.TrimSpace(content)
	if err := errors.Join(messageID.Validate(), orderID.Validate(), sender.Validate(), role.Validate()); err != nil {
		return PostChatMessageCommand{}, err
	}
	if content == "" {
		return PostChatMessageCommand{}, errs.NewValueIsRequiredError("content")
	}

	return PostChatMessageCommand{
		messageID: messageID,
		orderID:   orderID,
		sender:    sender,
		role:      role,
		content:   content,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c PostChatMessageCommand) Validate() error {
	return c.guard.Validate(ErrPostChatMessageCommandIsNotConstructed)
}

func (c PostChatMessageCommand) MessageID() kernel.UUID { return c.messageID }
func (c PostChatMessageCommand) OrderID() kernel.UUID   { return c.orderID }
func (c PostChatMessageCommand) Sender() order.Party    { return c.sender }
func (c PostChatMessageCommand) Role() kernel.Role      { return c.role }
func (c PostChatMessageCommand) Content() string        { return c.content }
