package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// RecordDeliveryCommandHandler closes a delivery.
//
// Steps, each in its own unit of work:
//  1. check the order belongs to the courier and may become Delivered, then
//     append the DeliveryRecord (skipped if the order is already recorded)
//  2. transition the order to Delivered as the courier and log the change
//  3. return the courier to Available when no other order is out with them
//
// Repeating the call for a delivered, recorded order only retries step 3, so a
// call that failed part way can be finished by calling again.
type RecordDeliveryCommandHandler struct {
	uowFactory UoWFactory
}

// NewRecordDeliveryCommandHandler creates the handler. Each step gets its own
// unit of work from uowFactory.
func NewRecordDeliveryCommandHandler(uowFactory UoWFactory) RecordDeliveryCommandHandler {
	return RecordDeliveryCommandHandler{uowFactory: uowFactory}
}

// Handle runs the steps in order and stops at the first error.
func (h RecordDeliveryCommandHandler) Handle(ctx context.Context, cmd RecordDeliveryCommand) (err error) {
	ctx, span := tracer.Start(ctx, "commands.RecordDelivery", trace.WithAttributes(
		attribute.String("order.id", cmd.OrderID().String()),
	))
	defer func() { endSpan(span, err) }()

	if err = cmd.Validate(); err != nil {
		return err
	}

	courierID, done, err := h.appendRecord(ctx, cmd)
	if err != nil {
		return err
	}

	if !done {
		if err = h.markDelivered(ctx, cmd); err != nil {
			return err
		}
	}

	return h.releaseCourier(ctx, courierID, cmd.OrderID())
}

// appendRecord returns done=true when the delivery was already fully recorded.
func (h RecordDeliveryCommandHandler) appendRecord(ctx context.Context, cmd RecordDeliveryCommand) (kernel.UUID, bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	c, err := uow.CourierRepository().GetByUserID(ctx, cmd.Actor().ID)
	if err != nil {
		return kernel.UUID{}, false, err
	}

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return kernel.UUID{}, false, err
	}

	if !o.IsAssignedTo(c.ID()) {
		return kernel.UUID{}, false, errs.NewForbiddenError("record delivery", "order is not assigned to this courier")
	}

	if o.Status() == order.Delivered && c.HasDelivered(o.ID()) {
		return c.ID(), true, nil
	}

	if o.Status() != order.Delivered && !o.Status().CanTransitionTo(order.Delivered, kernel.RoleCourier) {
		return kernel.UUID{}, false, errs.NewIllegalTransitionError(
			o.Status().String(), order.Delivered.String(), kernel.RoleCourier.String(),
			statusNames(o.Status().AllowedTargets(kernel.RoleCourier)))
	}

	appended, err := c.RecordDelivery(o.ID(), cmd.DeliveredAt(), cmd.CustomerRating())
	if err != nil {
		return kernel.UUID{}, false, err
	}

	if appended {
		if err = uow.CourierRepository().Update(ctx, c); err != nil {
			return kernel.UUID{}, false, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, false, err
	}

	return c.ID(), false, nil
}

func (h RecordDeliveryCommandHandler) markDelivered(ctx context.Context, cmd RecordDeliveryCommand) error {
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

	if o.Status() == order.Delivered {
		return nil
	}

	change, err := o.Transition(cmd.Actor(), order.Delivered, cmd.DeliveredAt())
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}
	if err = uow.StatusChangeLog().Append(ctx, change); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h RecordDeliveryCommandHandler) releaseCourier(ctx context.Context, courierID, orderID kernel.UUID) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	active, err := uow.OrderRepository().CountOutForDelivery(ctx, courierID, orderID)
	if err != nil {
		return err
	}

	c, err := uow.CourierRepository().Get(ctx, courierID)
	if err != nil {
		return err
	}

	before := c.OperationalStatus()
	c.FinishDelivery(active)
	if c.OperationalStatus() == before {
		return nil
	}

	if err = uow.CourierRepository().Update(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func statusNames(statuses []order.Status) []string {
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, s.String())
	}
	return names
}
