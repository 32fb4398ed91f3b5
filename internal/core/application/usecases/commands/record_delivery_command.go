package commands

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRecordDeliveryCommandIsNotConstructed = errors.New(
	"RecordDeliveryCommand must be created via NewRecordDeliveryCommand constructor",
)

// RecordDeliveryCommand confirms that a courier handed an order over.
// CustomerRating is an optional 1..5 score collected at the door.
type RecordDeliveryCommand struct { //nolint:recvcheck //using for validation
	actor          kernel.Actor
	orderID        kernel.UUID
	deliveredAt    time.Time
	customerRating *int

	guard guard.ConstructorGuard
}

func NewRecordDeliveryCommand(
	actor kernel.Actor,
	orderID kernel.UUID,
	deliveredAt time.Time,
	customerRating *int,
) (RecordDeliveryCommand, error) {
	if err := actor.Validate(); err != nil {
		return RecordDeliveryCommand{}, err
	}
	if !actor.Is(kernel.RoleCourier) {
		return RecordDeliveryCommand{}, errs.NewValueIsInvalidErrorWithCause("actor", fmt.Errorf("%s cannot record deliveries", actor.Role))
	}

	var errList []error
	if err := orderID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("orderId", err))
	}
	if deliveredAt.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("deliveredAt"))
	}
	if customerRating != nil && (*customerRating < courier.MinCustomerRating || *customerRating > courier.MaxCustomerRating) {
		errList = append(errList, errs.NewValueIsOutOfRangeError("customerRating", *customerRating, courier.MinCustomerRating, courier.MaxCustomerRating))
	}
	if err := errors.Join(errList...); err != nil {
		return RecordDeliveryCommand{}, err
	}

	return RecordDeliveryCommand{
		actor:          actor,
		orderID:        orderID,
		deliveredAt:    deliveredAt,
		customerRating: customerRating,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c RecordDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrRecordDeliveryCommandIsNotConstructed)
}

func (c RecordDeliveryCommand) Actor() kernel.Actor    { return c.actor }
func (c RecordDeliveryCommand) OrderID() kernel.UUID   { return c.orderID }
func (c RecordDeliveryCommand) DeliveredAt() time.Time { return c.deliveredAt }
func (c RecordDeliveryCommand) CustomerRating() *int   { return c.customerRating }
