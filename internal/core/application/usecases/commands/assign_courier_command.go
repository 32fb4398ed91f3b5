package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrAssignCourierCommandIsNotConstructed = errors.New(
	"AssignCourierCommand must be created via NewAssignCourierCommand constructor",
)

// AssignCourierCommand is the dispatcher's pre-assignment of a courier to an
// order. It never changes the order status.
//
// Example:
//
//	eta := time.Now().Add(40 * time.Minute)
//	cmd, err := NewAssignCourierCommand(adminActor, orderID, courierID, &eta)
type AssignCourierCommand struct { //nolint:recvcheck //using for validation
	actor               kernel.Actor
	orderID             kernel.UUID
	courierID           kernel.UUID
	estimatedDeliveryAt *time.Time

	guard guard.ConstructorGuard
}

func NewAssignCourierCommand(
	actor kernel.Actor,
	orderID kernel.UUID,
	courierID kernel.UUID,
	estimatedDeliveryAt *time.Time,
) (AssignCourierCommand, error) {
	var idErrs []error
	if err := orderID.Validate(); err != nil {
		idErrs = append(idErrs, errs.NewValueIsRequiredErrorWithCause("orderId", err))
	}
	if err := courierID.Validate(); err != nil {
		idErrs = append(idErrs, errs.NewValueIsRequiredErrorWithCause("courierId", err))
	}
	if err := errors.Join(append(idErrs, actor.Validate())...); err != nil {
		return AssignCourierCommand{}, err
	}

	return AssignCourierCommand{
		actor:               actor,
		orderID:             orderID,
		courierID:           courierID,
		estimatedDeliveryAt: estimatedDeliveryAt,
		guard:               guard.NewConstructorGuard(),
	}, nil
}

func (c AssignCourierCommand) Validate() error {
	return c.guard.Validate(ErrAssignCourierCommandIsNotConstructed)
}

func (c AssignCourierCommand) Actor() kernel.Actor             { return c.actor }
func (c AssignCourierCommand) OrderID() kernel.UUID            { return c.orderID }
func (c AssignCourierCommand) CourierID() kernel.UUID          { return c.courierID }
func (c AssignCourierCommand) EstimatedDeliveryAt() *time.Time { return c.estimatedDeliveryAt }
