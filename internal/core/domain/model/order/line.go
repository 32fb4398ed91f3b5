package order

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Line is one purchased item with its name and price frozen at checkout.
type Line struct {
	productRef kernel.ItemRef
	name       string
	quantity   int
	unitPrice  decimal.Decimal
}

func NewLine(ref kernel.ItemRef, name string, quantity int, unitPrice decimal.Decimal) (Line, error) {
	l := Line{
		productRef: ref,
		name:       strings.TrimSpace(name),
		quantity:   quantity,
		unitPrice:  unitPrice,
	}

	var errList []error
	if err := ref.Validate(); err != nil {
		errList = append(errList, err)
	}
	if l.name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("productName"))
	}
	if quantity < 1 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is less than 1", quantity)))
	}
	if unitPrice.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("unitPrice", fmt.Errorf("%s is negative", unitPrice)))
	}
	if err := errors.Join(errList...); err != nil {
		return Line{}, err
	}

	return l, nil
}

func (l Line) ProductRef() kernel.ItemRef {
	return l.productRef
}

func (l Line) Name() string {
	return l.name
}

func (l Line) Quantity() int {
	return l.quantity
}

func (l Line) UnitPrice() decimal.Decimal {
	return l.unitPrice
}

// Total is quantity × unit price.
func (l Line) Total() decimal.Decimal {
	return l.unitPrice.Mul(decimal.NewFromInt(int64(l.quantity)))
}
