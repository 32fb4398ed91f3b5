// Package rating holds the customer Rating of a delivered order.
package rating

import (
	"errors"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

const (
	MinScore = 1
	MaxScore = 5
)

var ErrRatingIsNotConstructed = errors.New("Rating must be created via NewRating constructor")

// Rating scores one delivered order on food, service and delivery.
// There is at most one Rating per order.
type Rating struct {
	id            kernel.UUID
	orderID       kernel.UUID
	customerID    kernel.UUID
	foodScore     int
	serviceScore  int
	deliveryScore int
	comment       string
	createdAt     time.Time
	guard         guard.ConstructorGuard
}

// NewRating validates every score is an integer in [MinScore, MaxScore].
//
// Example:
//
//	r, err := rating.NewRating(kernel.NewUUID(), orderID, customerID, 5, 4, 4, "hot and fast", time.Now())
func NewRating(
	id, orderID, customerID kernel.UUID,
	food, service, delivery int,
	comment string,
	createdAt time.Time,
) (*Rating, error) {
	r := &Rating{
		comment:   strings.TrimSpace(comment),
		createdAt: createdAt.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setOrderID(orderID),
		r.setCustomerID(customerID),
		setScore("foodScore", food, &r.foodScore),
		setScore("serviceScore", service, &r.serviceScore),
		setScore("deliveryScore", delivery, &r.deliveryScore),
	); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Rating) Validate() error {
	if r == nil {
		return ErrRatingIsNotConstructed
	}
	return r.guard.Validate(ErrRatingIsNotConstructed)
}

func (r *Rating) ID() kernel.UUID         { return r.id }
func (r *Rating) OrderID() kernel.UUID    { return r.orderID }
func (r *Rating) CustomerID() kernel.UUID { return r.customerID }
func (r *Rating) FoodScore() int          { return r.foodScore }
func (r *Rating) ServiceScore() int       { return r.serviceScore }
func (r *Rating) DeliveryScore() int      { return r.deliveryScore }
func (r *Rating) Comment() string         { return r.comment }
func (r *Rating) CreatedAt() time.Time    { return r.createdAt }

// Average is (food + service + delivery) / 3.
func (r *Rating) Average() float64 {
	return float64(r.foodScore+r.serviceScore+r.deliveryScore) / 3
}

func (r *Rating) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Rating) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	r.orderID = id
	return nil
}

func (r *Rating) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	r.customerID = id
	return nil
}

func setScore(name string, value int, target *int) error {
	if value < MinScore || value > MaxScore {
		return errs.NewValueIsOutOfRangeError(name, value, MinScore, MaxScore)
	}
	*target = value
	return nil
}
