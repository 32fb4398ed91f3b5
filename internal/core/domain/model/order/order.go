package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrCourierRequired is the cause attached to a rejected OutForDelivery transition.
	ErrCourierRequired = errors.New("an assigned courier is required to go out for delivery")
)

// Order is the aggregate root created by checkout.
//
// Order follows these invariants:
//   - Lines are non-empty and never change after creation
//   - total = subtotal - discount + shippingCost and is never negative
//   - Status changes only through Transition, which consults the transition table
//   - OutForDelivery and Delivered orders always have a courier
type Order struct {
	id         kernel.UUID
	customerID kernel.UUID
	lines      []Line
	status     Status

	deliveryAddress string
	paymentMethod   string
	observations    string

	subtotal     decimal.Decimal
	discount     decimal.Decimal
	shippingCost decimal.Decimal
	total        decimal.Decimal

	courierID           *kernel.UUID
	estimatedDeliveryAt *time.Time

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// Pricing holds the externally decided price adjustments applied at checkout.
type Pricing struct {
	Discount     decimal.Decimal
	ShippingCost decimal.Decimal
}

// NewOrder creates a Pending order. The subtotal is computed from lines.
//
// Parameters:
//   - id: order identifier
//   - customerID: the customer placing the order
//   - lines: at least one line, snapshotted from the catalog
//   - deliveryAddress, paymentMethod: required, non-blank
//   - observations: optional free text
//   - pricing: discount and shipping cost, both non-negative
//   - now: creation time
//
// Returns:
//   - *Order: the Pending order
//   - error: joined validation errors, or a ValueIsInvalidError for a negative total
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), customerID, lines,
//	    "Av. Arequipa 123", "cash", "", order.Pricing{}, time.Now())
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	lines []Line,
	deliveryAddress string,
	paymentMethod string,
	observations string,
	pricing Pricing,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		observations:  strings.TrimSpace(observations),
		createdAt:     now.UTC(),
		updatedAt:     now.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setLines(lines),
		o.setDeliveryAddress(deliveryAddress),
		o.setPaymentMethod(paymentMethod),
		o.setPricing(pricing),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreParams carries persisted order state back into the domain.
type RestoreParams struct {
	ID                  kernel.UUID
	CustomerID          kernel.UUID
	Lines               []Line
	Status              Status
	DeliveryAddress     string
	PaymentMethod       string
	Observations        string
	Subtotal            decimal.Decimal
	Discount            decimal.Decimal
	ShippingCost        decimal.Decimal
	Total               decimal.Decimal
	CourierID           *kernel.UUID
	EstimatedDeliveryAt *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// RestoreOrder rebuilds an order from storage without recomputing prices,
// so stored snapshots survive later catalog changes.
func RestoreOrder(p RestoreParams) (*Order, error) {
	o := &Order{
		customerID:          p.CustomerID,
		lines:               p.Lines,
		status:              p.Status,
		deliveryAddress:     p.DeliveryAddress,
		paymentMethod:       p.PaymentMethod,
		observations:        p.Observations,
		subtotal:            p.Subtotal,
		discount:            p.Discount,
		shippingCost:        p.ShippingCost,
		total:               p.Total,
		courierID:           p.CourierID,
		estimatedDeliveryAt: p.EstimatedDeliveryAt,
		createdAt:           p.CreatedAt,
		updatedAt:           p.UpdatedAt,
		isConstructed:       true,
	}

	if err := errors.Join(o.setID(p.ID), p.Status.Validate()); err != nil {
		return nil, err
	}

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Lines returns a copy of the order lines.
func (o *Order) Lines() []Line {
	lines := make([]Line, len(o.lines))
	copy(lines, o.lines)
	return lines
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) DeliveryAddress() string {
	return o.deliveryAddress
}

func (o *Order) PaymentMethod() string {
	return o.paymentMethod
}

func (o *Order) Observations() string {
	return o.observations
}

func (o *Order) Subtotal() decimal.Decimal {
	return o.subtotal
}

func (o *Order) Discount() decimal.Decimal {
	return o.discount
}

func (o *Order) ShippingCost() decimal.Decimal {
	return o.shippingCost
}

func (o *Order) Total() decimal.Decimal {
	return o.total
}

// CourierID returns the assigned courier's ID, or nil if unassigned.
func (o *Order) CourierID() *kernel.UUID {
	if o.courierID == nil {
		return nil
	}
	id := *o.courierID
	return &id
}

// Courier returns the courier slot as a Reference or Unassigned ref.
func (o *Order) Courier() CourierRef {
	if o.courierID == nil {
		return UnassignedCourier()
	}
	return CourierReferenceTo(*o.courierID)
}

func (o *Order) IsAssignedTo(courierID kernel.UUID) bool {
	return o.courierID != nil && o.courierID.IsEqual(courierID)
}

func (o *Order) EstimatedDeliveryAt() *time.Time {
	if o.estimatedDeliveryAt == nil {
		return nil
	}
	eta := *o.estimatedDeliveryAt
	return &eta
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// AllowedTargets is the table entry for (status, role) minus OutForDelivery
// while no courier is assigned.
func (o *Order) AllowedTargets(role kernel.Role) []Status {
	allowed := o.status.AllowedTargets(role)
	if o.courierID == nil {
		allowed = slices.DeleteFunc(allowed, func(s Status) bool { return s == OutForDelivery })
	}
	return allowed
}

// Transition moves the order to target on behalf of actor.
//
// The move must be listed in the transition table for (current status, actor role).
// OutForDelivery additionally requires an assigned courier. On rejection an
// *errs.IllegalTransitionError carrying AllowedTargets is returned and the
// order is left untouched.
//
// Returns the StatusChange to be appended to the audit log.
func (o *Order) Transition(actor kernel.Actor, target Status, now time.Time) (StatusChange, error) {
	if err := target.Validate(); err != nil {
		return StatusChange{}, err
	}

	from := o.status
	allowed := o.AllowedTargets(actor.Role)
	if !from.CanTransitionTo(target, actor.Role) {
		return StatusChange{}, errs.NewIllegalTransitionError(
			from.String(), target.String(), actor.Role.String(), statusNames(allowed))
	}

	if target == OutForDelivery && o.courierID == nil {
		return StatusChange{}, errs.NewIllegalTransitionErrorWithCause(
			from.String(), target.String(), actor.Role.String(), statusNames(allowed), ErrCourierRequired)
	}

	o.status = target
	o.updatedAt = now.UTC()

	return StatusChange{
		OrderID: o.id,
		From:    from,
		To:      target,
		Role:    actor.Role,
		ActorID: actor.ID,
		At:      o.updatedAt,
	}, nil
}

// AssignCourier sets the courier and optional ETA without touching the status.
// Terminal orders cannot be reassigned.
func (o *Order) AssignCourier(courierID kernel.UUID, estimatedDeliveryAt *time.Time, now time.Time) error {
	if err := courierID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("courierId", err)
	}

	if o.status.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to assign a courier", o.status),
		)
	}

	id := courierID
	o.courierID = &id
	o.estimatedDeliveryAt = nil
	if estimatedDeliveryAt != nil {
		eta := estimatedDeliveryAt.UTC()
		o.estimatedDeliveryAt = &eta
	}
	o.updatedAt = now.UTC()
	return nil
}

// UnassignCourier clears the courier and ETA. It is rejected once the order is
// out for delivery or finished, since those states require a courier.
func (o *Order) UnassignCourier(now time.Time) error {
	if o.status == OutForDelivery || o.status.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to unassign a courier", o.status),
		)
	}

	o.courierID = nil
	o.estimatedDeliveryAt = nil
	o.updatedAt = now.UTC()
	return nil
}

// ClaimBy assigns an unassigned order to courierID. Claiming an order already
// held by the same courier is a no-op.
func (o *Order) ClaimBy(courierID kernel.UUID, now time.Time) error {
	if o.courierID != nil {
		if o.courierID.IsEqual(courierID) {
			return nil
		}
		return errs.NewForbiddenError("take order", "order is assigned to another courier")
	}

	return o.AssignCourier(courierID, nil, now)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setLines(lines []Line) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredErrorWithCause("lines", errors.New("an order needs at least one line"))
	}

	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Total())
	}

	o.lines = make([]Line, len(lines))
	copy(o.lines, lines)
	o.subtotal = subtotal
	return nil
}

func (o *Order) setDeliveryAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return errs.NewValueIsRequiredError("deliveryAddress")
	}
	o.deliveryAddress = address
	return nil
}

func (o *Order) setPaymentMethod(method string) error {
	method = strings.TrimSpace(method)
	if method == "" {
		return errs.NewValueIsRequiredError("paymentMethod")
	}
	o.paymentMethod = method
	return nil
}

// setPricing must run after setLines.
func (o *Order) setPricing(p Pricing) error {
	if p.Discount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("discount", fmt.Errorf("%s is negative", p.Discount))
	}
	if p.ShippingCost.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("shippingCost", fmt.Errorf("%s is negative", p.ShippingCost))
	}

	total := o.subtotal.Sub(p.Discount).Add(p.ShippingCost)
	if total.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("total", fmt.Errorf("%s is negative", total))
	}

	o.discount = p.Discount
	o.shippingCost = p.ShippingCost
	o.total = total
	return nil
}
