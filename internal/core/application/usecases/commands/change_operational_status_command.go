package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrChangeOperationalStatusCommandIsNotConstructed = errors.New(
	"ChangeOperationalStatusCommand must be created via NewChangeOperationalStatusCommand constructor",
)

type ChangeOperationalStatusCommand struct { //nolint:recvcheck //using for validation
	actor     kernel.Actor
	courierID kernel.UUID
	status    courier.OperationalStatus

	guard guard.ConstructorGuard
}

func NewChangeOperationalStatusCommand(
	actor kernel.Actor,
	courierID kernel.UUID,
	status courier.OperationalStatus,
) (ChangeOperationalStatusCommand, error) {
	var courierErr error
	if err := courierID.Validate(); err != nil {
		courierErr = errs.NewValueIsRequiredErrorWithCause("courierId", err)
	}

	if err := errors.Join(actor.Validate(), courierErr, status.Validate()); err != nil {
		return ChangeOperationalStatusCommand{}, err
	}

	return ChangeOperationalStatusCommand{
		actor:     actor,
		courierID: courierID,
		status:    status,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeOperationalStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOperationalStatusCommandIsNotConstructed)
}

func (c ChangeOperationalStatusCommand) Actor() kernel.Actor               { return c.actor }
func (c ChangeOperationalStatusCommand) CourierID() kernel.UUID            { return c.courierID }
func (c ChangeOperationalStatusCommand) Status() courier.OperationalStatus { return c.status }
