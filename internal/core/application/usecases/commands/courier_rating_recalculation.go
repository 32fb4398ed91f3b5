package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

// recalculateCourierRating refreshes, inside uow, the average of the courier
// who delivered orderID. Orders without a delivery record (for example marked
// Delivered by sales/admin) have no courier to update.
func recalculateCourierRating(
	ctx context.Context,
	uow UoW,
	calculator services.CourierRatingCalculator,
	orderID kernel.UUID,
) error {
	c, err := uow.CourierRepository().GetByDeliveredOrder(ctx, orderID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	ratings, err := uow.RatingRepository().ListByOrderIDs(ctx, c.DeliveredOrderIDs())
	if err != nil {
		return err
	}

	if err = calculator.Recalculate(c, ratings); err != nil {
		return err
	}

	return uow.CourierRepository().Update(ctx, c)
}
