package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrUnassignCourierCommandIsNotConstructed = errors.New(
	"UnassignCourierCommand must be created via NewUnassignCourierCommand constructor",
)

type UnassignCourierCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewUnassignCourierCommand(actor kernel.Actor, orderID kernel.UUID) (UnassignCourierCommand, error) {
	var orderErr error
	if err := orderID.Validate(); err != nil {
		orderErr = errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	if err := errors.Join(orderErr, actor.Validate()); err != nil {
		return UnassignCourierCommand{}, err
	}

	return UnassignCourierCommand{
		actor:   actor,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UnassignCourierCommand) Validate() error {
	return c.guard.Validate(ErrUnassignCourierCommandIsNotConstructed)
}

func (c UnassignCourierCommand) Actor() kernel.Actor  { return c.actor }
func (c UnassignCourierCommand) OrderID() kernel.UUID { return c.orderID }
