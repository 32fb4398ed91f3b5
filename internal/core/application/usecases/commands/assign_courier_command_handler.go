package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// AssignCourierCommandHandler sets the courier and ETA of an order.
// Only sales/admin may dispatch; terminal orders and off-duty couriers are rejected.
type AssignCourierCommandHandler struct {
	uowFactory UoWFactory
}

// NewAssignCourierCommandHandler creates a handler that opens one unit of work
// per call from uowFactory.
func NewAssignCourierCommandHandler(uowFactory UoWFactory) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{uowFactory: uowFactory}
}

// Handle checks the courier can take assignments and stores the new courier
// and ETA on the order. Reassigning an order replaces the previous courier.
func (h AssignCourierCommandHandler) Handle(ctx context.Context, cmd AssignCourierCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !cmd.Actor().Is(kernel.RoleSalesAdmin) {
		return errs.NewForbiddenError("assign courier", "only sales/admin can dispatch orders")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	c, err := uow.CourierRepository().Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}
	if !c.CanReceiveAssignments() {
		return errs.NewValueIsInvalidErrorWithCause("courierId", ErrCourierOffDuty)
	}

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.AssignCourier(c.ID(), cmd.EstimatedDeliveryAt(), time.Now()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
