package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand asks to move an order to a new status on behalf of an actor.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   kernel.Actor
	target  order.Status

	guard guard.ConstructorGuard
}

func NewTransitionOrderCommand(orderID kernel.UUID, actor kernel.Actor, target order.Status) (TransitionOrderCommand, error) {
	command := TransitionOrderCommand{
		orderID: orderID,
		actor:   actor,
		target:  target,
		guard:   guard.NewConstructorGuard(),
	}

	var orderErr error
	if err := orderID.Validate(); err != nil {
		orderErr = errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	if err := errors.Join(orderErr, actor.Validate(), target.Validate()); err != nil {
		return TransitionOrderCommand{}, err
	}

	return command, nil
}

func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

func (c TransitionOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c TransitionOrderCommand) Actor() kernel.Actor  { return c.actor }
func (c TransitionOrderCommand) Target() order.Status { return c.target }
