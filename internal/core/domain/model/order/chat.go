package order

import (
	"errors"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ChatMessage is one line of the per-order conversation between client, dispatch and courier.
type ChatMessage struct {
	ID         kernel.UUID
	SenderID   kernel.UUID
	SenderName string
	SenderRole kernel.Role
	Content    string
	At         time.Time
	ReadBy     []kernel.UUID
}

// NewChatMessage builds a message already read by its sender.
func NewChatMessage(
	id kernel.UUID,
	sender Party,
	role kernel.Role,
	content string,
	now time.Time,
) (ChatMessage, error) {
	content = strings.TrimSpace(content)
	if err := errors.Join(id.Validate(), sender.Validate(), role.Validate()); err != nil {
		return ChatMessage{}, err
	}
	if content == "" {
		return ChatMessage{}, errs.NewValueIsRequiredError("content")
	}

	return ChatMessage{
		ID:         id,
		SenderID:   sender.ID,
		SenderName: sender.Name,
		SenderRole: role,
		Content:    content,
		At:         now,
		ReadBy:     []kernel.UUID{sender.ID},
	}, nil
}
