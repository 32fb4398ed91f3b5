package order

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// StatusChange is the audit record produced by a successful transition.
type StatusChange struct {
	OrderID kernel.UUID
	From    Status
	To      Status
	Role    kernel.Role
	ActorID kernel.UUID
	At      time.Time
}
