package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCheckoutCommandIsNotConstructed = errors.New(
	"CheckoutCommand must be created via NewCheckoutCommand constructor",
)

// CheckoutCommand turns a cart snapshot into one Pending order.
//
// Example:
//
//	cmd, err := NewCheckoutCommand(customerID, session.Snapshot(), "Av. Larco 345", "card", "")
//	if err != nil {
//	    return err // empty cart or blank address/payment method
//	}
type CheckoutCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	customerID      kernel.UUID
	items           []cart.Item
	deliveryAddress string
	paymentMethod   string
	observations    string

	guard guard.ConstructorGuard
}

// NewCheckoutCommand rejects an empty cart and a blank address or payment
// method before anything is sent to storage.
func NewCheckoutCommand(
	customerID kernel.UUID,
	snapshot cart.Snapshot,
	deliveryAddress string,
	paymentMethod string,
	observations string,
) (CheckoutCommand, error) {
	command := CheckoutCommand{
		orderID:      kernel.NewUUID(),
		observations: strings.TrimSpace(observations),
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setCustomerID(customerID),
		command.setItems(snapshot.Items),
		command.setDeliveryAddress(deliveryAddress),
		command.setPaymentMethod(paymentMethod),
	); err != nil {
		return CheckoutCommand{}, err
	}

	return command, nil
}

func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}

func (c CheckoutCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CheckoutCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c CheckoutCommand) Items() []cart.Item {
	items := make([]cart.Item, len(c.items))
	copy(items, c.items)
	return items
}

func (c CheckoutCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

func (c CheckoutCommand) PaymentMethod() string {
	return c.paymentMethod
}

func (c CheckoutCommand) Observations() string {
	return c.observations
}

func (c *CheckoutCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	c.customerID = id
	return nil
}

func (c *CheckoutCommand) setItems(items []cart.Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredErrorWithCause("cart", errors.New("cart is empty"))
	}
	c.items = make([]cart.Item, len(items))
	copy(c.items, items)
	return nil
}

func (c *CheckoutCommand) setDeliveryAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return errs.NewValueIsRequiredError("deliveryAddress")
	}
	c.deliveryAddress = address
	return nil
}

func (c *CheckoutCommand) setPaymentMethod(method string) error {
	method = strings.TrimSpace(method)
	if method == "" {
		return errs.NewValueIsRequiredError("paymentMethod")
	}
	c.paymentMethod = method
	return nil
}
