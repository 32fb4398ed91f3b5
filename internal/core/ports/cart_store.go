package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// CartStore keeps the serialized cart of a customer between sessions.
type CartStore interface {
	// Load returns nil data and no error when nothing is stored.
	Load(ctx context.Context, customerID kernel.UUID) ([]byte, error)
	Save(ctx context.Context, customerID kernel.UUID, data []byte) error
	Delete(ctx context.Context, customerID kernel.UUID) error
}
