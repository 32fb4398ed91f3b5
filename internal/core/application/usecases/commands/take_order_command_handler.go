package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// TakeOrderCommandHandler lets a courier pick up an order.
//
// Workflow:
//   - resolve the courier linked to the calling user; it must be on duty
//   - the order must be visible to the courier: already assigned to them, or
//     unassigned and Confirmed/InPreparation; an unassigned order is claimed
//   - move the order to OutForDelivery under dispatch authority (the
//     sales/admin row of the transition table), since the assignment is what
//     authorises the pickup; the audit entry records that authority
//   - mark the courier OnDelivery
type TakeOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewTakeOrderCommandHandler creates the handler.
func NewTakeOrderCommandHandler(uowFactory UoWFactory) TakeOrderCommandHandler {
	return TakeOrderCommandHandler{uowFactory: uowFactory}
}

// Handle returns the OutForDelivery status change. The order, the audit entry
// and the courier's OnDelivery status commit together.
func (h TakeOrderCommandHandler) Handle(ctx context.Context, cmd TakeOrderCommand) (order.StatusChange, error) {
	if err := cmd.Validate(); err != nil {
		return order.StatusChange{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return order.StatusChange{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	c, err := uow.CourierRepository().GetByUserID(ctx, cmd.Actor().ID)
	if err != nil {
		return order.StatusChange{}, err
	}
	if !c.CanReceiveAssignments() {
		return order.StatusChange{}, errs.NewValueIsInvalidErrorWithCause("courier", ErrCourierOffDuty)
	}

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return order.StatusChange{}, err
	}

	courierID := c.ID()
	scope, err := order.NewScope(cmd.Actor(), &courierID, order.Filter{})
	if err != nil {
		return order.StatusChange{}, err
	}
	if !scope.Visible(o) {
		return order.StatusChange{}, errs.NewForbiddenError("take order", "order is not available to this courier")
	}

	now := time.Now()
	if err = o.ClaimBy(courierID, now); err != nil {
		return order.StatusChange{}, err
	}

	dispatch := kernel.Actor{ID: cmd.Actor().ID, Role: kernel.RoleSalesAdmin}
	change, err := o.Transition(dispatch, order.OutForDelivery, now)
	if err != nil {
		return order.StatusChange{}, err
	}

	c.StartDelivery()

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return order.StatusChange{}, err
	}
	if err = uow.StatusChangeLog().Append(ctx, change); err != nil {
		return order.StatusChange{}, err
	}
	if err = uow.CourierRepository().Update(ctx, c); err != nil {
		return order.StatusChange{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return order.StatusChange{}, err
	}

	return change, nil
}
