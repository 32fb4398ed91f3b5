package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"
)

// CourierRepository persists Courier aggregates including their delivery history.
type CourierRepository interface {
	Add(ctx context.Context, courier *courier.Courier) error

	// Update saves status, location, rating and appends new delivery records.
	Update(ctx context.Context, courier *courier.Courier) error

	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetByUserID resolves the courier linked to an identity-provider user.
	GetByUserID(ctx context.Context, userID kernel.UUID) (*courier.Courier, error)

	// GetByDeliveredOrder finds the courier whose history holds orderID.
	GetByDeliveredOrder(ctx context.Context, orderID kernel.UUID) (*courier.Courier, error)

	// GetMany returns the couriers found among ids; missing ids are skipped.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*courier.Courier, error)
}
