// Package cart holds the customer's shopping cart before checkout.
//
// A cart contains at most one Item per (kind, reference id). Adding an item
// that is already present increases its quantity; quantities never drop
// below one, an item reaching zero is removed.
package cart

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Item is one cart line. Name is informational; checkout re-reads it from the catalog.
type Item struct {
	Ref       kernel.ItemRef
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

func (i Item) Validate() error {
	var errList []error
	if err := i.Ref.Validate(); err != nil {
		errList = append(errList, err)
	}
	if i.Quantity < 1 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is less than 1", i.Quantity)))
	}
	if i.UnitPrice.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("unitPrice", fmt.Errorf("%s is negative", i.UnitPrice)))
	}
	return errors.Join(errList...)
}

// LineTotal is unit price × quantity.
func (i Item) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is not safe for concurrent use; cartsession.Session serializes access.
type Cart struct {
	customerID kernel.UUID
	items      []Item
}

func New(customerID kernel.UUID) (*Cart, error) {
	if err := customerID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	return &Cart{customerID: customerID, items: make([]Item, 0)}, nil
}

// Restore rebuilds a cart from persisted items, rejecting invalid or duplicate entries.
func Restore(customerID kernel.UUID, items []Item) (*Cart, error) {
	c, err := New(customerID)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
		if c.indexOf(item.Ref) >= 0 {
			return nil, errs.NewValueIsInvalidErrorWithCause("items", fmt.Errorf("duplicate item %s", item.Ref))
		}
		c.items = append(c.items, item)
	}
	return c, nil
}

func (c *Cart) CustomerID() kernel.UUID {
	return c.customerID
}

// AddItem appends a new item or increments the quantity of an existing one.
func (c *Cart) AddItem(ref kernel.ItemRef, name string, unitPrice decimal.Decimal, quantity int) error {
	item := Item{Ref: ref, Name: name, UnitPrice: unitPrice, Quantity: quantity}
	if err := item.Validate(); err != nil {
		return err
	}

	if i := c.indexOf(ref); i >= 0 {
		c.items[i].Quantity += quantity
		return nil
	}

	c.items = append(c.items, item)
	return nil
}

// UpdateQuantity overwrites the quantity; a quantity of zero or less removes the item.
func (c *Cart) UpdateQuantity(ref kernel.ItemRef, quantity int) error {
	i := c.indexOf(ref)
	if i < 0 {
		return errs.NewObjectNotFoundError("cartItem", ref.String())
	}

	if quantity <= 0 {
		c.RemoveItem(ref)
		return nil
	}

	c.items[i].Quantity = quantity
	return nil
}

// RemoveItem deletes the item if present.
func (c *Cart) RemoveItem(ref kernel.ItemRef) {
	if i := c.indexOf(ref); i >= 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
	}
}

func (c *Cart) Clear() {
	c.items = make([]Item, 0)
}

// Items returns a copy in insertion order.
func (c *Cart) Items() []Item {
	items := make([]Item, len(c.items))
	copy(items, c.items)
	return items
}

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// ItemCount is the sum of quantities.
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Snapshot is an immutable copy of a cart taken for checkout.
type Snapshot struct {
	CustomerID kernel.UUID
	Items      []Item
	Total      decimal.Decimal
}

func (c *Cart) Snapshot() Snapshot {
	return Snapshot{
		CustomerID: c.customerID,
		Items:      c.Items(),
		Total:      c.Total(),
	}
}

func (c *Cart) indexOf(ref kernel.ItemRef) int {
	for i, item := range c.items {
		if item.Ref == ref {
			return i
		}
	}
	return -1
}
