package queries

import (
	"context"
	"database/sql"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAllCouriersQueryHandler reads couriers straight from the couriers table.
type GetAllCouriersQueryHandler struct {
	db *gorm.DB
}

// NewGetAllCouriersQueryHandler creates the handler.
func NewGetAllCouriersQueryHandler(db *gorm.DB) GetAllCouriersQueryHandler {
	return GetAllCouriersQueryHandler{db: db}
}

// Handle returns couriers ordered by operational status, then best rated first.
func (h GetAllCouriersQueryHandler) Handle(
	ctx context.Context,
	query GetAllCouriersQuery,
) ([]GetAllCouriersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := requireRole(query.Actor(), "list couriers", kernel.RoleSalesAdmin); err != nil {
		return nil, err
	}

	couriers := make([]GetAllCouriersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			user_id,
			status,
			location_lat,
			location_lon,
			average_rating,
			rated_deliveries
		FROM couriers
		ORDER BY status, average_rating DESC, id
	`).Rows()
	if err != nil {
		return nil, errs.NewRemoteFailureError("list couriers", err)
	}
	defer rows.Close()

	for rows.Next() {
		var courier GetAllCouriersQueryResponse
		var id, userID uuid.UUID
		var lat, lon sql.NullFloat64

		err = rows.Scan(
			&id,
			&userID,
			&courier.OperationalStatus,
			&lat,
			&lon,
			&courier.AverageRating,
			&courier.RatedDeliveries,
		)
		if err != nil {
			return nil, errs.NewRemoteFailureError("list couriers", err)
		}

		courierID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		courier.ID = courierID

		courierUserID, idErr := kernel.UUIDFromBytes(userID[:])
		if idErr != nil {
			return nil, idErr
		}
		courier.UserID = courierUserID

		if lat.Valid && lon.Valid {
			location, locErr := kernel.NewLocation(lat.Float64, lon.Float64)
			if locErr != nil {
				return nil, locErr
			}
			courier.Location = &location
		}
		couriers = append(couriers, courier)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewRemoteFailureError("list couriers", err)
	}

	return couriers, nil
}
