package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/rating"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

// SubmitRatingCommandHandler stores a rating and refreshes the courier average.
//
// The order must exist, belong to the caller, be Delivered and not be rated
// yet. The rating and the refreshed courier average commit together, so a
// failed call leaves neither behind and can simply be repeated.
type SubmitRatingCommandHandler struct {
	uowFactory UoWFactory
	calculator services.CourierRatingCalculator
}

// NewSubmitRatingCommandHandler creates the handler.
func NewSubmitRatingCommandHandler(uowFactory UoWFactory, calculator services.CourierRatingCalculator) SubmitRatingCommandHandler {
	return SubmitRatingCommandHandler{
		uowFactory: uowFactory,
		calculator: calculator,
	}
}

// Handle returns the stored rating. A second rating for the same order fails
// with ErrRatingAlreadyExists.
func (h SubmitRatingCommandHandler) Handle(ctx context.Context, cmd SubmitRatingCommand) (*rating.Rating, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.store(ctx, cmd)
}

func (h SubmitRatingCommandHandler) store(ctx context.Context, cmd SubmitRatingCommand) (*rating.Rating, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if !o.CustomerID().IsEqual(cmd.Actor().ID) {
		return nil, errs.NewForbiddenError("submit rating", "order belongs to another customer")
	}
	if o.Status() != order.Delivered {
		return nil, errs.NewValueIsInvalidErrorWithCause("orderId", ErrOrderNotDelivered)
	}

	exists, err := uow.RatingRepository().ExistsForOrder(ctx, o.ID())
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.NewValueIsInvalidErrorWithCause("orderId", ErrRatingAlreadyExists)
	}

	r, err := rating.NewRating(
		cmd.RatingID(), o.ID(), cmd.Actor().ID,
		cmd.FoodScore(), cmd.ServiceScore(), cmd.DeliveryScore(),
		cmd.Comment(), time.Now(),
	)
	if err != nil {
		return nil, err
	}

	if err = uow.RatingRepository().Add(ctx, r); err != nil {
		return nil, err
	}

	if err = recalculateCourierRating(ctx, uow, h.calculator, o.ID()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return r, nil
}
