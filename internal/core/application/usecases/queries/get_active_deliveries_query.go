package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetActiveDeliveriesQueryIsNotConstructed = errors.New(
		"GetActiveDeliveriesQuery must be created via NewGetActiveDeliveriesQuery constructor",
	)
)

// GetActiveDeliveriesQuery lists the orders currently out for delivery together
// with their courier's last known position. Kitchen and sales/admin may run it.
type GetActiveDeliveriesQuery struct {
	actor kernel.Actor
	guard guard.ConstructorGuard
}

func NewGetActiveDeliveriesQuery(actor kernel.Actor) (GetActiveDeliveriesQuery, error) {
	if err := actor.Validate(); err != nil {
		return GetActiveDeliveriesQuery{}, err
	}
	return GetActiveDeliveriesQuery{actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q GetActiveDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveDeliveriesQueryIsNotConstructed)
}

func (q GetActiveDeliveriesQuery) Actor() kernel.Actor { return q.actor }

type GetActiveDeliveriesQueryResponse struct {
	OrderID             kernel.UUID
	CourierID           kernel.UUID
	DeliveryAddress     string
	EstimatedDeliveryAt *time.Time
	CourierLocation     *kernel.Location
}
