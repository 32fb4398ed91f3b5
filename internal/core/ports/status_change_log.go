package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// StatusChangeLog is the append-only audit trail of order transitions.
type StatusChangeLog interface {
	Append(ctx context.Context, change order.StatusChange) error
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]order.StatusChange, error)
}
