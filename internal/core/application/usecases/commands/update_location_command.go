package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateLocationCommandIsNotConstructed = errors.New(
	"UpdateLocationCommand must be created via NewUpdateLocationCommand constructor",
)

type UpdateLocationCommand struct { //nolint:recvcheck //using for validation
	actor     kernel.Actor
	courierID kernel.UUID
	location  kernel.Location
	at        time.Time

	guard guard.ConstructorGuard
}

func NewUpdateLocationCommand(
	actor kernel.Actor,
	courierID kernel.UUID,
	location kernel.Location,
	at time.Time,
) (UpdateLocationCommand, error) {
	var courierErr error
	if err := courierID.Validate(); err != nil {
		courierErr = errs.NewValueIsRequiredErrorWithCause("courierId", err)
	}

	if err := errors.Join(actor.Validate(), courierErr, location.Validate()); err != nil {
		return UpdateLocationCommand{}, err
	}

	if at.IsZero() {
		at = time.Now()
	}

	return UpdateLocationCommand{
		actor:     actor,
		courierID: courierID,
		location:  location,
		at:        at,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateLocationCommandIsNotConstructed)
}

func (c UpdateLocationCommand) Actor() kernel.Actor       { return c.actor }
func (c UpdateLocationCommand) CourierID() kernel.UUID    { return c.courierID }
func (c UpdateLocationCommand) Location() kernel.Location { return c.location }
func (c UpdateLocationCommand) At() time.Time             { return c.at }
