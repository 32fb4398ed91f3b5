package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ChangeOperationalStatusCommandHandler lets a courier (or sales/admin on
// their behalf) switch between Available, OnDelivery and OffDuty freely.
type ChangeOperationalStatusCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewChangeOperationalStatusCommandHandler creates the handler.
func NewChangeOperationalStatusCommandHandler(uowFactory CourierUoWFactory) ChangeOperationalStatusCommandHandler {
	return ChangeOperationalStatusCommandHandler{uowFactory: uowFactory}
}

// Handle returns the courier with its new status.
func (h ChangeOperationalStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOperationalStatusCommand) (*courier.Courier, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	c, err := uow.CourierRepository().Get(ctx, cmd.CourierID())
	if err != nil {
		return nil, err
	}

	if err = authorizeCourierChange(cmd.Actor(), c, "change operational status"); err != nil {
		return nil, err
	}

	if err = c.ChangeOperationalStatus(cmd.Status()); err != nil {
		return nil, err
	}

	if err = uow.CourierRepository().Update(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return c, nil
}

// authorizeCourierChange admits the courier's own user and sales/admin.
func authorizeCourierChange(actor kernel.Actor, c *courier.Courier, action string) error {
	if actor.Is(kernel.RoleSalesAdmin) {
		return nil
	}
	if actor.Is(kernel.RoleCourier) && c.UserID().IsEqual(actor.ID) {
		return nil
	}
	return errs.NewForbiddenError(action, "courier belongs to another user")
}
