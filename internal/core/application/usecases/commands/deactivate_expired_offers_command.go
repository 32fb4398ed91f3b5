package commands

import (
	"errors"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrDeactivateExpiredOffersCommandIsNotConstructed = errors.New(
	"DeactivateExpiredOffersCommand must be created via NewDeactivateExpiredOffersCommand constructor",
)

type DeactivateExpiredOffersCommand struct { //nolint:recvcheck //using for validation
	now time.Time

	guard guard.ConstructorGuard
}

func NewDeactivateExpiredOffersCommand(now time.Time) (DeactivateExpiredOffersCommand, error) {
	if now.IsZero() {
		return DeactivateExpiredOffersCommand{}, errs.NewValueIsRequiredError("now")
	}

	return DeactivateExpiredOffersCommand{
		now:   now,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c DeactivateExpiredOffersCommand) Validate() error {
	return c.guard.Validate(ErrDeactivateExpiredOffersCommandIsNotConstructed)
}

func (c DeactivateExpiredOffersCommand) Now() time.Time {
	return c.now
}
