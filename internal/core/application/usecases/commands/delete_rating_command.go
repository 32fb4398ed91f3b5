package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrDeleteRatingCommandIsNotConstructed = errors.New(
	"DeleteRatingCommand must be created via NewDeleteRatingCommand constructor",
)

type DeleteRatingCommand struct { //nolint:recvcheck //using for validation
	actor    kernel.Actor
	ratingID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteRatingCommand(actor kernel.Actor, ratingID kernel.UUID) (DeleteRatingCommand, error) {
	var ratingErr error
	if err := ratingID.Validate(); err != nil {
		ratingErr = errs.NewValueIsRequiredErrorWithCause("ratingId", err)
	}

	if err := errors.Join(actor.Validate(), ratingErr); err != nil {
		return DeleteRatingCommand{}, err
	}

	return DeleteRatingCommand{
		actor:    actor,
		ratingID: ratingID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteRatingCommand) Validate() error {
	return c.guard.Validate(ErrDeleteRatingCommandIsNotConstructed)
}

func (c DeleteRatingCommand) Actor() kernel.Actor   { return c.actor }
func (c DeleteRatingCommand) RatingID() kernel.UUID { return c.ratingID }
