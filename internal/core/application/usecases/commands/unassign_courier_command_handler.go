package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// UnassignCourierCommandHandler clears the courier and ETA of an order that
// is not yet out for delivery.
type UnassignCourierCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewUnassignCourierCommandHandler(uowFactory OrderUoWFactory) UnassignCourierCommandHandler {
	return UnassignCourierCommandHandler{uowFactory: uowFactory}
}

// Handle is restricted to sales/admin.
func (h UnassignCourierCommandHandler) Handle(ctx context.Context, cmd UnassignCourierCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !cmd.Actor().Is(kernel.RoleSalesAdmin) {
		return errs.NewForbiddenError("unassign courier", "only sales/admin can dispatch orders")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.UnassignCourier(time.Now()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
