package courier

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrCourierIsNotConstructed is returned for zero-value couriers.
var ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")

// Courier is the aggregate root for a delivery person.
//
// Invariants:
//   - id and userID are valid
//   - at most one DeliveryRecord per order
//   - averageRating is in [0, 5] and only changes through ApplyRatings
type Courier struct {
	id                kernel.UUID
	userID            kernel.UUID
	status            OperationalStatus
	location          *kernel.Location
	history           []*DeliveryRecord
	averageRating     float64
	ratedDeliveries   int
	locationUpdatedAt *time.Time
	guard             guard.ConstructorGuard
}

// NewCourier registers a courier for the user userID. New couriers are OffDuty
// and have no location until the first device push.
//
// Example:
//
//	c, err := courier.NewCourier(kernel.NewUUID(), userID)
//	if err != nil {
//	    return err
//	}
//	_ = c.ChangeOperationalStatus(courier.Available)
func NewCourier(id kernel.UUID, userID kernel.UUID) (*Courier, error) {
	c := &Courier{
		status:  OffDuty,
		history: make([]*DeliveryRecord, 0),
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(c.setID(id), c.setUserID(userID)); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreParams carries persisted courier state back into the domain.
type RestoreParams struct {
	ID                kernel.UUID
	UserID            kernel.UUID
	Status            OperationalStatus
	Location          *kernel.Location
	LocationUpdatedAt *time.Time
	History           []*DeliveryRecord
	AverageRating     float64
	RatedDeliveries   int
}

func RestoreCourier(p RestoreParams) (*Courier, error) {
	c := &Courier{
		location:          p.Location,
		locationUpdatedAt: p.LocationUpdatedAt,
		averageRating:     p.AverageRating,
		ratedDeliveries:   p.RatedDeliveries,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(p.ID),
		c.setUserID(p.UserID),
		c.setStatus(p.Status),
		c.setHistory(p.History),
	); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

func (c *Courier) IsEqual(other *Courier) bool {
	if other == nil {
		return false
	}
	return c.id.IsEqual(other.id)
}

func (c *Courier) ID() kernel.UUID {
	return c.id
}

func (c *Courier) UserID() kernel.UUID {
	return c.userID
}

func (c *Courier) OperationalStatus() OperationalStatus {
	return c.status
}

// Location returns the last reported position, or nil if none was reported yet.
func (c *Courier) Location() *kernel.Location {
	if c.location == nil {
		return nil
	}
	loc := *c.location
	return &loc
}

func (c *Courier) LocationUpdatedAt() *time.Time {
	if c.locationUpdatedAt == nil {
		return nil
	}
	at := *c.locationUpdatedAt
	return &at
}

// History returns a copy of the delivery history in insertion order.
func (c *Courier) History() []*DeliveryRecord {
	history := make([]*DeliveryRecord, len(c.history))
	copy(history, c.history)
	return history
}

func (c *Courier) AverageRating() float64 {
	return c.averageRating
}

func (c *Courier) RatedDeliveries() int {
	return c.ratedDeliveries
}

// DeliveredOrderIDs lists the orders in the delivery history.
func (c *Courier) DeliveredOrderIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(c.history))
	for _, r := range c.history {
		ids = append(ids, r.OrderID())
	}
	return ids
}

// CanReceiveAssignments reports whether dispatch may assign orders to the courier.
func (c *Courier) CanReceiveAssignments() bool {
	return c.status != OffDuty
}

func (c *Courier) ChangeOperationalStatus(status OperationalStatus) error {
	return c.setStatus(status)
}

// UpdateLocation stores the latest device position. Later writes win.
func (c *Courier) UpdateLocation(location kernel.Location, at time.Time) error {
	if err := location.Validate(); err != nil {
		return err
	}

	loc := location
	ts := at.UTC()
	c.location = &loc
	c.locationUpdatedAt = &ts
	return nil
}

// HasDelivered reports whether a record for orderID is already in the history.
func (c *Courier) HasDelivered(orderID kernel.UUID) bool {
	for _, r := range c.history {
		if r.OrderID().IsEqual(orderID) {
			return true
		}
	}
	return false
}

// RecordDelivery appends a delivery record unless one exists for the order.
//
// Returns:
//   - bool: true when a record was appended, false when the order was already recorded
//   - error: validation error for the record fields
func (c *Courier) RecordDelivery(orderID kernel.UUID, deliveredAt time.Time, customerRating *int) (bool, error) {
	if c.HasDelivered(orderID) {
		return false, nil
	}

	record, err := NewDeliveryRecord(orderID, deliveredAt, customerRating)
	if err != nil {
		return false, err
	}

	c.history = append(c.history, record)
	return true, nil
}

// StartDelivery marks the courier busy with an order.
func (c *Courier) StartDelivery() {
	c.status = OnDelivery
}

// FinishDelivery returns an OnDelivery courier to Available once no other
// order is out for delivery with them.
func (c *Courier) FinishDelivery(otherActiveDeliveries int) {
	if c.status == OnDelivery && otherActiveDeliveries == 0 {
		c.status = Available
	}
}

// ApplyRatings replaces the derived rating with the mean of the per-order
// averages given. An empty slice resets the rating to zero.
func (c *Courier) ApplyRatings(orderAverages []float64) error {
	if len(orderAverages) == 0 {
		c.averageRating = 0
		c.ratedDeliveries = 0
		return nil
	}

	var sum float64
	for _, avg := range orderAverages {
		if avg < MinCustomerRating || avg > MaxCustomerRating {
			return errs.NewValueIsOutOfRangeError("orderAverage", avg, MinCustomerRating, MaxCustomerRating)
		}
		sum += avg
	}

	c.averageRating = sum / float64(len(orderAverages))
	c.ratedDeliveries = len(orderAverages)
	return nil
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setUserID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("userId", err)
	}
	c.userID = id
	return nil
}

func (c *Courier) setStatus(status OperationalStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}

func (c *Courier) setHistory(history []*DeliveryRecord) error {
	c.history = make([]*DeliveryRecord, 0, len(history))
	for _, r := range history {
		if err := r.Validate(); err != nil {
			return err
		}
		if c.HasDelivered(r.OrderID()) {
			return errs.NewValueIsInvalidErrorWithCause("history", errors.New("duplicate delivery record for order "+r.OrderID().String()))
		}
		c.history = append(c.history, r)
	}
	return nil
}
