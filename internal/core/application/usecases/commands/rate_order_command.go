package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrRateOrderCommandIsNotConstructed = errors.New(
	"RateOrderCommand must be created via NewRateOrderCommand constructor",
)

// RateOrderCommand is a client reviewing a delivered order.
type RateOrderCommand struct {
	orderID  kernel.UUID
	clientID kernel.UUID
	rating   int
	feedback string

	guard guard.ConstructorGuard
}

func NewRateOrderCommand(orderID, clientID kernel.UUID, rating int, feedback string) (RateOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), clientID.Validate()); err != nil {
		return RateOrderCommand{}, err
	}
	if rating < order.MinRating || rating > order.MaxRating {
		return RateOrderCommand{}, errs.NewValueIsOutOfRangeError("rating", rating, order.MinRating, order.MaxRating)
	}

	return RateOrderCommand{
		orderID:  orderID,
		clientID: clientID,
		rating:   rating,
		feedback: strings.TrimSpace(feedback),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c RateOrderCommand) Validate() error {
	return c.guard.Validate(ErrRateOrderCommandIsNotConstructed)
}

func (c RateOrderCommand) OrderID() kernel.UUID  { return c.orderID }
func (c RateOrderCommand) ClientID() kernel.UUID { return c.clientID }
func (c RateOrderCommand) Rating() int           { return c.rating }
func (c RateOrderCommand) Feedback() string      { return c.feedback }
