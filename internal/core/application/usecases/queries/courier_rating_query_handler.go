package queries

import (
	"context"

	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// CourierRatingQueryHandler reads the denormalized rating columns of a courier.
// The values are kept current by the rating commands.
type CourierRatingQueryHandler struct {
	db *gorm.DB
}

// NewCourierRatingQueryHandler creates the handler on db.
func NewCourierRatingQueryHandler(db *gorm.DB) CourierRatingQueryHandler {
	return CourierRatingQueryHandler{db: db}
}

// Handle returns an ObjectNotFound error for an unknown courier. A courier
// without ratings reports an average of zero.
func (h CourierRatingQueryHandler) Handle(
	ctx context.Context,
	query CourierRatingQuery,
) (CourierRatingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return CourierRatingQueryResponse{}, err
	}

	var row struct {
		AverageRating   float64
		RatedDeliveries int
	}
	result := h.db.WithContext(ctx).Raw(`
		SELECT
			average_rating,
			rated_deliveries
		FROM couriers
		WHERE id = ?
	`, query.CourierID().Bytes()).Scan(&row)
	if result.Error != nil {
		return CourierRatingQueryResponse{}, errs.NewRemoteFailureError("get courier rating", result.Error)
	}
	if result.RowsAffected == 0 {
		return CourierRatingQueryResponse{}, errs.NewObjectNotFoundError("courierId", query.CourierID().String())
	}

	return CourierRatingQueryResponse{
		CourierID:       query.CourierID(),
		AverageRating:   row.AverageRating,
		RatedDeliveries: row.RatedDeliveries,
	}, nil
}
