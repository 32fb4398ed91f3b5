package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrTakeOrderCommandIsNotConstructed = errors.New(
	"TakeOrderCommand must be created via NewTakeOrderCommand constructor",
)

// TakeOrderCommand is a courier's explicit pickup of an order.
type TakeOrderCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewTakeOrderCommand(actor kernel.Actor, orderID kernel.UUID) (TakeOrderCommand, error) {
	if err := actor.Validate(); err != nil {
		return TakeOrderCommand{}, err
	}
	if !actor.Is(kernel.RoleCourier) {
		return TakeOrderCommand{}, errs.NewValueIsInvalidErrorWithCause("actor", fmt.Errorf("%s cannot take orders", actor.Role))
	}
	if err := orderID.Validate(); err != nil {
		return TakeOrderCommand{}, errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}

	return TakeOrderCommand{
		actor:   actor,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c TakeOrderCommand) Validate() error {
	return c.guard.Validate(ErrTakeOrderCommandIsNotConstructed)
}

func (c TakeOrderCommand) Actor() kernel.Actor  { return c.actor }
func (c TakeOrderCommand) OrderID() kernel.UUID { return c.orderID }
