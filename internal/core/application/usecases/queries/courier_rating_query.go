package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCourierRatingQueryIsNotConstructed = errors.New(
		"CourierRatingQuery must be created via NewCourierRatingQuery constructor",
	)
)

type CourierRatingQuery struct {
	courierID kernel.UUID
	guard     guard.ConstructorGuard
}

func NewCourierRatingQuery(courierID kernel.UUID) (CourierRatingQuery, error) {
	if err := courierID.Validate(); err != nil {
		return CourierRatingQuery{}, errs.NewValueIsRequiredErrorWithCause("courierId", err)
	}
	return CourierRatingQuery{courierID: courierID, guard: guard.NewConstructorGuard()}, nil
}

func (q CourierRatingQuery) Validate() error {
	return q.guard.Validate(ErrCourierRatingQueryIsNotConstructed)
}

func (q CourierRatingQuery) CourierID() kernel.UUID { return q.courierID }

// CourierRatingQueryResponse is the derived rating of a courier. AverageRating
// is zero while RatedDeliveries is zero.
type CourierRatingQueryResponse struct {
	CourierID       kernel.UUID
	AverageRating   float64
	RatedDeliveries int
}
