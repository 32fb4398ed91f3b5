package services

import (
	"fulfillment/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// ZeroPricingPolicy charges neither discount nor shipping. Deployments that
// price delivery plug in their own policy at the composition root.
type ZeroPricingPolicy struct{}

func (ZeroPricingPolicy) Price(_ decimal.Decimal) order.Pricing {
	return order.Pricing{Discount: decimal.Zero, ShippingCost: decimal.Zero}
}
