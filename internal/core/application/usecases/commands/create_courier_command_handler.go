package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// CreateCourierCommandHandler registers a new OffDuty courier.
// Sales/admin may register anyone; a courier user may register only itself.
type CreateCourierCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewCreateCourierCommandHandler creates the handler.
func NewCreateCourierCommandHandler(uowFactory CourierUoWFactory) CreateCourierCommandHandler {
	return CreateCourierCommandHandler{uowFactory: uowFactory}
}

// Handle fails with ErrCourierAlreadyExists when the user already has a courier.
func (h CreateCourierCommandHandler) Handle(ctx context.Context, cmd CreateCourierCommand) (*courier.Courier, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	actor := cmd.Actor()
	selfRegistration := actor.Is(kernel.RoleCourier) && actor.ID.IsEqual(cmd.UserID())
	if !actor.Is(kernel.RoleSalesAdmin) && !selfRegistration {
		return nil, errs.NewForbiddenError("create courier", "only sales/admin can register other users")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	_, err := uow.CourierRepository().GetByUserID(ctx, cmd.UserID())
	switch {
	case err == nil:
		return nil, errs.NewValueIsInvalidErrorWithCause("userId", ErrCourierAlreadyExists)
	case !errors.Is(err, errs.ErrObjectNotFound):
		return nil, err
	}

	c, err := courier.NewCourier(cmd.CourierID(), cmd.UserID())
	if err != nil {
		return nil, err
	}

	if err = uow.CourierRepository().Add(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return c, nil
}
