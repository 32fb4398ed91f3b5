package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/offer"
)

type OfferRepository interface {
	Add(ctx context.Context, offer *offer.Offer) error
	Update(ctx context.Context, offer *offer.Offer) error

	// ListExpiredActive returns active offers whose end date is before now.
	ListExpiredActive(ctx context.Context, now time.Time) ([]*offer.Offer, error)
}
