package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository persists Order aggregates.
type OrderRepository interface {
	// Add persists a new order together with its lines.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the mutable part of an order: status, courier, ETA and updatedAt.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns an *errs.ObjectNotFoundError when the order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListForScope returns the orders visible in scope, newest first.
	ListForScope(ctx context.Context, scope order.Scope) ([]*order.Order, error)

	// CountOutForDelivery counts the courier's OutForDelivery orders other than exclude.
	CountOutForDelivery(ctx context.Context, courierID kernel.UUID, exclude kernel.UUID) (int, error)
}
