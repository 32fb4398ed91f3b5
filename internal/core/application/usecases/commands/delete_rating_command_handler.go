package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

// DeleteRatingCommandHandler removes a rating and recalculates the courier
// average in the same unit of work. The rating's author and sales/admin may
// delete it.
type DeleteRatingCommandHandler struct {
	uowFactory UoWFactory
	calculator services.CourierRatingCalculator
}

// NewDeleteRatingCommandHandler creates the handler. calculator recomputes the
// courier average from the ratings left after the delete.
func NewDeleteRatingCommandHandler(uowFactory UoWFactory, calculator services.CourierRatingCalculator) DeleteRatingCommandHandler {
	return DeleteRatingCommandHandler{
		uowFactory: uowFactory,
		calculator: calculator,
	}
}

// Handle returns a Forbidden error for anyone but the author or sales/admin.
// A failed recalculation rolls the delete back.
func (h DeleteRatingCommandHandler) Handle(ctx context.Context, cmd DeleteRatingCommand) error {
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

	r, err := uow.RatingRepository().Get(ctx, cmd.RatingID())
	if err != nil {
		return err
	}

	actor := cmd.Actor()
	if !actor.Is(kernel.RoleSalesAdmin) && !r.CustomerID().IsEqual(actor.ID) {
		return errs.NewForbiddenError("delete rating", "rating belongs to another customer")
	}

	if err = uow.RatingRepository().Delete(ctx, r.ID()); err != nil {
		return err
	}

	if err = recalculateCourierRating(ctx, uow, h.calculator, r.OrderID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
