package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/rating"
)

type RatingRepository interface {
	Add(ctx context.Context, rating *rating.Rating) error
	Get(ctx context.Context, id kernel.UUID) (*rating.Rating, error)
	Delete(ctx context.Context, id kernel.UUID) error

	// ExistsForOrder reports whether the order already has a rating.
	ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error)

	// ListByOrderIDs returns the ratings of the given orders.
	ListByOrderIDs(ctx context.Context, orderIDs []kernel.UUID) ([]*rating.Rating, error)
}
