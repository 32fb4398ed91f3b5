package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// CheckoutCommandHandler snapshots names and prices from the catalog, applies
// the pricing policy and stores the new order in one unit of work.
// Clearing the cart is left to the caller once Handle succeeds.
type CheckoutCommandHandler struct {
	uowFactory OrderUoWFactory
	catalog    ports.Catalog
	pricing    ports.PricingPolicy
}

// NewCheckoutCommandHandler wires the handler to the catalog used for price
// snapshots and the pricing policy that turns the subtotal into a total.
func NewCheckoutCommandHandler(
	uowFactory OrderUoWFactory,
	catalog ports.Catalog,
	pricing ports.PricingPolicy,
) CheckoutCommandHandler {
	return CheckoutCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		pricing:    pricing,
	}
}

// Handle returns the created order. On any error nothing is stored.
func (h CheckoutCommandHandler) Handle(ctx context.Context, cmd CheckoutCommand) (_ *order.Order, err error) {
	ctx, span := tracer.Start(ctx, "commands.Checkout", trace.WithAttributes(
		attribute.String("customer.id", cmd.CustomerID().String()),
		attribute.Int("cart.items", len(cmd.items)),
	))
	defer func() { endSpan(span, err) }()

	if err = cmd.Validate(); err != nil {
		return nil, err
	}

	lines := make([]order.Line, 0, len(cmd.items))
	subtotal := decimal.Zero
	for _, item := range cmd.items {
		entry, lookupErr := h.catalog.Lookup(ctx, item.Ref)
		if lookupErr != nil {
			if errors.Is(lookupErr, errs.ErrObjectNotFound) {
				return nil, lookupErr
			}
			return nil, errs.NewRemoteFailureError("catalog lookup", lookupErr)
		}

		line, lineErr := order.NewLine(item.Ref, entry.Name, item.Quantity, entry.UnitPrice)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
		subtotal = subtotal.Add(line.Total())
	}

	o, err := order.NewOrder(
		cmd.OrderID(),
		cmd.CustomerID(),
		lines,
		cmd.DeliveryAddress(),
		cmd.PaymentMethod(),
		cmd.Observations(),
		h.pricing.Price(subtotal),
		time.Now(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("order.id", o.ID().String()))
	return o, nil
}
