package commands

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrSetOrderPriceCommandIsNotConstructed = errors.New(
	"SetOrderPriceCommand must be created via NewSetOrderPriceCommand constructor",
)

// SetOrderPriceCommand is a dispatcher quoting a REQUESTED order.
type SetOrderPriceCommand struct {
	orderID kernel.UUID
	price   float64

	guard guard.ConstructorGuard
}

func NewSetOrderPriceCommand(orderID kernel.UUID, price float64) (SetOrderPriceCommand, error) {
	if err := orderID.Validate(); err != nil {
		return SetOrderPriceCommand{}, err
	}
	if !(price > 0) {
		return SetOrderPriceCommand{}, errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%v is not greater than 0", price))
	}

	return SetOrderPriceCommand{
		orderID: orderID,
		price:   price,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c SetOrderPriceCommand) Validate() error {
	return c.guard.Validate(ErrSetOrderPriceCommandIsNotConstructed)
}

func (c SetOrderPriceCommand) OrderID() kernel.UUID { return c.orderID }
func (c SetOrderPriceCommand) Price() float64       { return c.price }
