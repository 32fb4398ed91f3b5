package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateCourierCommandIsNotConstructed = errors.New(
	"CreateCourierCommand must be created via NewCreateCourierCommand constructor",
)

// CreateCourierCommand registers a courier profile for an identity-provider user.
type CreateCourierCommand struct { //nolint:recvcheck //using for validation
	actor     kernel.Actor
	courierID kernel.UUID
	userID    kernel.UUID

	guard guard.ConstructorGuard
}

func NewCreateCourierCommand(actor kernel.Actor, userID kernel.UUID) (CreateCourierCommand, error) {
	var userErr error
	if err := userID.Validate(); err != nil {
		userErr = errs.NewValueIsRequiredErrorWithCause("userId", err)
	}

	if err := errors.Join(actor.Validate(), userErr); err != nil {
		return CreateCourierCommand{}, err
	}

	return CreateCourierCommand{
		actor:     actor,
		courierID: kernel.NewUUID(),
		userID:    userID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CreateCourierCommand) Validate() error {
	return c.guard.Validate(ErrCreateCourierCommandIsNotConstructed)
}

func (c CreateCourierCommand) Actor() kernel.Actor    { return c.actor }
func (c CreateCourierCommand) CourierID() kernel.UUID { return c.courierID }
func (c CreateCourierCommand) UserID() kernel.UUID    { return c.userID }
