package courier

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

const (
	MinCustomerRating = 1
	MaxCustomerRating = 5
)

// ErrDeliveryRecordIsNotConstructed is returned for zero-value records.
var ErrDeliveryRecordIsNotConstructed = errors.New("DeliveryRecord must be created via NewDeliveryRecord constructor")

// DeliveryRecord is one completed delivery in a courier's history. It never
// changes after creation.
//
// Example:
//
//	rating := 5
//	rec, err := courier.NewDeliveryRecord(orderID, time.Now(), &rating)
type DeliveryRecord struct {
	orderID        kernel.UUID
	deliveredAt    time.Time
	customerRating *int
	guard          guard.ConstructorGuard
}

// NewDeliveryRecord validates the order id, a non-zero delivery time and an
// optional rating in [MinCustomerRating, MaxCustomerRating].
func NewDeliveryRecord(orderID kernel.UUID, deliveredAt time.Time, customerRating *int) (*DeliveryRecord, error) {
	r := &DeliveryRecord{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		r.setOrderID(orderID),
		r.setDeliveredAt(deliveredAt),
		r.setCustomerRating(customerRating),
	); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *DeliveryRecord) Validate() error {
	if r == nil {
		return ErrDeliveryRecordIsNotConstructed
	}
	return r.guard.Validate(ErrDeliveryRecordIsNotConstructed)
}

func (r *DeliveryRecord) OrderID() kernel.UUID {
	return r.orderID
}

func (r *DeliveryRecord) DeliveredAt() time.Time {
	return r.deliveredAt
}

func (r *DeliveryRecord) CustomerRating() *int {
	if r.customerRating == nil {
		return nil
	}
	v := *r.customerRating
	return &v
}

func (r *DeliveryRecord) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	r.orderID = id
	return nil
}

func (r *DeliveryRecord) setDeliveredAt(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("deliveredAt")
	}
	r.deliveredAt = at.UTC()
	return nil
}

func (r *DeliveryRecord) setCustomerRating(rating *int) error {
	if rating == nil {
		return nil
	}
	if *rating < MinCustomerRating || *rating > MaxCustomerRating {
		return errs.NewValueIsOutOfRangeError("customerRating", *rating, MinCustomerRating, MaxCustomerRating)
	}
	v := *rating
	r.customerRating = &v
	return nil
}
