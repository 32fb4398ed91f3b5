package queries

import (
	"context"
	"database/sql"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveDeliveriesQueryHandler lists orders out for delivery with their
// couriers' last known positions.
type GetActiveDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveDeliveriesQueryHandler creates the handler.
func NewGetActiveDeliveriesQueryHandler(db *gorm.DB) GetActiveDeliveriesQueryHandler {
	return GetActiveDeliveriesQueryHandler{db: db}
}

// Handle returns OutForDelivery orders, oldest first.
func (h GetActiveDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetActiveDeliveriesQuery,
) ([]GetActiveDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := requireRole(query.Actor(), "list active deliveries", kernel.RoleKitchen, kernel.RoleSalesAdmin); err != nil {
		return nil, err
	}

	deliveries := make([]GetActiveDeliveriesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.courier_id,
			o.delivery_address,
			o.estimated_delivery_at,
			c.location_lat,
			c.location_lon
		FROM orders o
		JOIN couriers c ON c.id = o.courier_id
		WHERE o.status = ?
		ORDER BY o.created_at, o.id
	`, order.OutForDelivery.String()).Rows()
	if err != nil {
		return nil, errs.NewRemoteFailureError("list active deliveries", err)
	}
	defer rows.Close()

	for rows.Next() {
		var delivery GetActiveDeliveriesQueryResponse
		var id, courierID uuid.UUID
		var eta sql.NullTime
		var lat, lon sql.NullFloat64

		err = rows.Scan(
			&id,
			&courierID,
			&delivery.DeliveryAddress,
			&eta,
			&lat,
			&lon,
		)
		if err != nil {
			return nil, errs.NewRemoteFailureError("list active deliveries", err)
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		delivery.OrderID = orderID

		cID, idErr := kernel.UUIDFromBytes(courierID[:])
		if idErr != nil {
			return nil, idErr
		}
		delivery.CourierID = cID

		if eta.Valid {
			at := eta.Time.UTC()
			delivery.EstimatedDeliveryAt = &at
		}

		if lat.Valid && lon.Valid {
			location, locErr := kernel.NewLocation(lat.Float64, lon.Float64)
			if locErr != nil {
				return nil, locErr
			}
			delivery.CourierLocation = &location
		}
		deliveries = append(deliveries, delivery)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewRemoteFailureError("list active deliveries", err)
	}

	return deliveries, nil
}
