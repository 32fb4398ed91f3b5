package services

import (
	"errors"

	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/rating"
)

// ErrCourierIsRequired is returned when Recalculate gets a nil or zero courier.
var ErrCourierIsRequired = errors.New("courier is required")

// CourierRatingCalculator recomputes the derived rating of a courier.
//
// Business rules:
//   - Only ratings of orders present in the courier's delivery history count
//   - Each rating contributes its own average (food + service + delivery) / 3
//   - The courier's rating is the mean of those averages, 0 when there are none
//
// Example:
//
//	calc := services.NewCourierRatingCalculator()
//	if err := calc.Recalculate(c, ratings); err != nil {
//	    return err
//	}
//	fmt.Printf("%.2f over %d deliveries", c.AverageRating(), c.RatedDeliveries())
type CourierRatingCalculator struct{}

func NewCourierRatingCalculator() CourierRatingCalculator {
	return CourierRatingCalculator{}
}

// Recalculate applies the mean of the matching ratings to c.
func (CourierRatingCalculator) Recalculate(c *courier.Courier, ratings []*rating.Rating) error {
	if err := c.Validate(); err != nil {
		return errors.Join(ErrCourierIsRequired, err)
	}

	averages := make([]float64, 0, len(ratings))
	for _, r := range ratings {
		if err := r.Validate(); err != nil {
			return err
		}
		if c.HasDelivered(r.OrderID()) {
			averages = append(averages, r.Average())
		}
	}

	return c.ApplyRatings(averages)
}
