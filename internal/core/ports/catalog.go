package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// CatalogEntry is the name and current price of a product or combo.
type CatalogEntry struct {
	Name      string
	UnitPrice decimal.Decimal
}

// Catalog is the read-only view of products and combos used to snapshot order lines.
type Catalog interface {
	// Lookup returns an *errs.ObjectNotFoundError for unknown references.
	Lookup(ctx context.Context, ref kernel.ItemRef) (CatalogEntry, error)
}

// PricingPolicy decides discount and shipping for a subtotal at checkout.
type PricingPolicy interface {
	Price(subtotal decimal.Decimal) order.Pricing
}
