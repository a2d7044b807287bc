package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateCourierCommandIsNotConstructed = errors.New(
		"CreateCourierCommand must be created via NewCreateCourierCommand constructor",
	)
	ErrNameIsRequired = errors.New("name is required")
)

// CreateCourierCommand registers a courier account known to the external user store.
//
// Example:
//
//	cmd, err := NewCreateCourierCommand(accountID, "Joana")
//	if err != nil {
//	    return fmt.Errorf("invalid courier data: %w", err)
//	}
//	c, err := handler.Handle(ctx, cmd)
type CreateCourierCommand struct {
	courierID kernel.UUID
	name      string

	guard guard.ConstructorGuard
}

func NewCreateCourierCommand(courierID kernel.UUID, name string) (CreateCourierCommand, error) {
	name = strings.TrimSpace(name)

	var nameErr error
	if name == "" {
		nameErr = ErrNameIsRequired
	}
	if err := errors.Join(courierID.Validate(), nameErr); err != nil {
		return CreateCourierCommand{}, err
	}

	return CreateCourierCommand{
		courierID: courierID,
		name:      name,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CreateCourierCommand) Validate() error {
	return c.guard.Validate(ErrCreateCourierCommandIsNotConstructed)
}

func (c CreateCourierCommand) CourierID() kernel.UUID { return c.courierID }
func (c CreateCourierCommand) Name() string           { return c.name }
