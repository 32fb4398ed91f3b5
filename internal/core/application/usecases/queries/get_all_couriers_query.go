// Package queries contains the read side: order listings, transition history,
// courier dashboards and rating read models.
package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetAllCouriersQueryIsNotConstructed = errors.New(
		"GetAllCouriersQuery must be created via NewGetAllCouriersQuery constructor",
	)
)

// GetAllCouriersQuery lists every courier with status, last position and rating
// for the dispatch dashboard. Only sales/admin may run it.
//
// Example:
//
//	query, err := NewGetAllCouriersQuery(actor)
//	if err != nil {
//	    return err
//	}
//	couriers, err := handler.Handle(ctx, query)
type GetAllCouriersQuery struct {
	actor kernel.Actor
	guard guard.ConstructorGuard
}

func NewGetAllCouriersQuery(actor kernel.Actor) (GetAllCouriersQuery, error) {
	if err := actor.Validate(); err != nil {
		return GetAllCouriersQuery{}, err
	}
	return GetAllCouriersQuery{actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q GetAllCouriersQuery) Validate() error {
	return q.guard.Validate(ErrGetAllCouriersQueryIsNotConstructed)
}

func (q GetAllCouriersQuery) Actor() kernel.Actor { return q.actor }

// GetAllCouriersQueryResponse is one courier row. Location is nil until the
// courier's device has reported a position.
type GetAllCouriersQueryResponse struct {
	ID                kernel.UUID
	UserID            kernel.UUID
	OperationalStatus string
	Location          *kernel.Location
	AverageRating     float64
	RatedDeliveries   int
}
