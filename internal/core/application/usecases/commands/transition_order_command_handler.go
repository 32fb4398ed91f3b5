package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TransitionOrderCommandHandler applies a role-gated status change.
//
// The legality check runs against the status read in the same unit of work.
// A rejected change persists nothing; an accepted one updates the order and
// appends a StatusChange to the audit log before committing.
//
// Couriers may only move orders assigned to them, and they never reach
// Delivered here: RecordDeliveryCommandHandler appends the DeliveryRecord and
// makes that transition.
//
// Example:
//
//	cmd, _ := NewTransitionOrderCommand(orderID, kitchenActor, order.Confirmed)
//	change, err := handler.Handle(ctx, cmd)
//	var illegal *errs.IllegalTransitionError
//	if errors.As(err, &illegal) {
//	    fmt.Println("allowed:", illegal.Allowed)
//	}
type TransitionOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewTransitionOrderCommandHandler creates the handler.
func NewTransitionOrderCommandHandler(uowFactory UoWFactory) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{uowFactory: uowFactory}
}

// Handle returns the appended StatusChange. An illegal target yields an
// *errs.IllegalTransitionError carrying the targets the actor may pick instead.
func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) (_ order.StatusChange, err error) {
	ctx, span := tracer.Start(ctx, "commands.TransitionOrder", trace.WithAttributes(
		attribute.String("order.id", cmd.OrderID().String()),
		attribute.String("order.target_status", cmd.Target().String()),
		attribute.String("actor.role", cmd.Actor().Role.String()),
	))
	defer func() { endSpan(span, err) }()

	if err = cmd.Validate(); err != nil {
		return order.StatusChange{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return order.StatusChange{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return order.StatusChange{}, err
	}

	if cmd.Actor().Is(kernel.RoleCourier) {
		c, courierErr := uow.CourierRepository().GetByUserID(ctx, cmd.Actor().ID)
		if courierErr != nil {
			return order.StatusChange{}, courierErr
		}
		if !o.IsAssignedTo(c.ID()) {
			return order.StatusChange{}, errs.NewForbiddenError("transition order", "order is not assigned to this courier")
		}
		if cmd.Target() == order.Delivered {
			return order.StatusChange{}, errs.NewValueIsInvalidErrorWithCause("status", ErrDeliveryNotRecorded)
		}
	}

	change, err := o.Transition(cmd.Actor(), cmd.Target(), time.Now())
	if err != nil {
		return order.StatusChange{}, err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return order.StatusChange{}, err
	}

	if err = uow.StatusChangeLog().Append(ctx, change); err != nil {
		return order.StatusChange{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return order.StatusChange{}, err
	}

	return change, nil
}
