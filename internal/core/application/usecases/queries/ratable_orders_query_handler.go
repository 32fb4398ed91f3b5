package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RatableOrdersQueryHandler lists the caller's delivered orders without a rating.
type RatableOrdersQueryHandler struct {
	db *gorm.DB
}

// NewRatableOrdersQueryHandler creates the handler.
func NewRatableOrdersQueryHandler(db *gorm.DB) RatableOrdersQueryHandler {
	return RatableOrdersQueryHandler{db: db}
}

// Handle returns the most recently delivered orders first.
func (h RatableOrdersQueryHandler) Handle(
	ctx context.Context,
	query RatableOrdersQuery,
) ([]RatableOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]RatableOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.total,
			o.updated_at
		FROM orders o
		LEFT JOIN ratings r ON r.order_id = o.id
		WHERE o.customer_id = ?
			AND o.status = ?
			AND r.id IS NULL
		ORDER BY o.updated_at DESC, o.id
	`, query.CustomerID().Bytes(), order.Delivered.String()).Rows()
	if err != nil {
		return nil, errs.NewRemoteFailureError("list ratable orders", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var total decimal.Decimal
		var deliveredAt time.Time

		if err = rows.Scan(&id, &total, &deliveredAt); err != nil {
			return nil, errs.NewRemoteFailureError("list ratable orders", err)
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		orders = append(orders, RatableOrdersQueryResponse{
			OrderID:     orderID,
			Total:       total,
			DeliveredAt: deliveredAt.UTC(),
		})
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewRemoteFailureError("list ratable orders", err)
	}

	return orders, nil
}
