package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// UpdateLocationCommandHandler stores the latest courier position.
// Concurrent writers are not ordered; the last one to commit wins.
type UpdateLocationCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewUpdateLocationCommandHandler creates the handler.
func NewUpdateLocationCommandHandler(uowFactory CourierUoWFactory) UpdateLocationCommandHandler {
	return UpdateLocationCommandHandler{uowFactory: uowFactory}
}

// Handle stamps the position with the command time, or the current time when
// the command carries none.
func (h UpdateLocationCommandHandler) Handle(ctx context.Context, cmd UpdateLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
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

	if err = authorizeCourierChange(cmd.Actor(), c, "update location"); err != nil {
		return err
	}

	if err = c.UpdateLocation(cmd.Location(), cmd.At()); err != nil {
		return err
	}

	if err = uow.CourierRepository().Update(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// InProcessLocationPusher adapts the handler to ports.LocationPusher for a
// tracker running in the same process as the service.
type InProcessLocationPusher struct {
	handler UpdateLocationCommandHandler
	actor   kernel.Actor
}

// NewInProcessLocationPusher pushes as actor, usually the courier being tracked.
func NewInProcessLocationPusher(handler UpdateLocationCommandHandler, actor kernel.Actor) InProcessLocationPusher {
	return InProcessLocationPusher{handler: handler, actor: actor}
}

func (p InProcessLocationPusher) PushLocation(ctx context.Context, courierID kernel.UUID, location kernel.Location) error {
	cmd, err := NewUpdateLocationCommand(p.actor, courierID, location, time.Time{})
	if err != nil {
		return err
	}
	return p.handler.Handle(ctx, cmd)
}
