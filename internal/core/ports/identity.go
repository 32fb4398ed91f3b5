package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// IdentityProvider exposes the authenticated caller of the current request.
type IdentityProvider interface {
	CurrentActor(ctx context.Context) (kernel.Actor, error)
	IsAuthenticated(ctx context.Context) bool
}
