package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// LocationSource is the device positioning service on the courier side.
type LocationSource interface {
	// Watch streams position updates until ctx is done. The error channel
	// carries *errs.GeolocationError values.
	Watch(ctx context.Context) (<-chan kernel.Location, <-chan error)

	// Current reads a single position. Implementations honour ctx deadlines.
	Current(ctx context.Context) (kernel.Location, error)
}

// LocationPusher delivers a courier position to the fulfillment service.
type LocationPusher interface {
	PushLocation(ctx context.Context, courierID kernel.UUID, location kernel.Location) error
}
