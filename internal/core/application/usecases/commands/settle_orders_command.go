package commands

import (
	"errors"
	"fmt"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrSettleOrdersCommandIsNotConstructed = errors.New(
	"SettleOrdersCommand must be created via NewSettleOrdersCommand constructor",
)

// SettlementParty names which side of the money flow is being settled.
type SettlementParty string

const (
	// SettleClient records that the client paid dispatch.
	SettleClient SettlementParty = "CLIENT"
	// SettleCourier records that dispatch paid the courier.
	SettleCourier SettlementParty = "COURIER"
)

func ParseSettlementParty(s string) (SettlementParty, error) {
	p := SettlementParty(strings.ToUpper(strings.TrimSpace(s)))
	if p != SettleClient && p != SettleCourier {
		return "", errs.NewValueIsInvalidErrorWithCause("party", fmt.Errorf("unknown settlement party %q", s))
	}
	return p, nil
}

// SettleOrdersCommand marks a batch of orders as paid in one transaction.
type SettleOrdersCommand struct {
	orderIDs []kernel.UUID
	party    SettlementParty

	guard guard.ConstructorGuard
}

func NewSettleOrdersCommand(orderIDs []kernel.UUID, party SettlementParty) (SettleOrdersCommand, error) {
	if len(orderIDs) == 0 {
		return SettleOrdersCommand{}, errs.NewValueIsRequiredError("orderIds")
	}
	if _, err := ParseSettlementParty(string(party)); err != nil {
		return SettleOrdersCommand{}, err
	}

	ids := make([]kernel.UUID, 0, len(orderIDs))
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return SettleOrdersCommand{}, err
		}
		ids = append(ids, id)
	}

	return SettleOrdersCommand{
		orderIDs: ids,
		party:    party,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c SettleOrdersCommand) Validate() error {
	return c.guard.Validate(ErrSettleOrdersCommandIsNotConstructed)
}

func (c SettleOrdersCommand) OrderIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.orderIDs...)
}

func (c SettleOrdersCommand) Party() SettlementParty { return c.party }
