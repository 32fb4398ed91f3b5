package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrRatableOrdersQueryIsNotConstructed = errors.New(
		"RatableOrdersQuery must be created via NewRatableOrdersQuery constructor",
	)
)

// RatableOrdersQuery lists the calling customer's delivered orders that have no rating yet.
type RatableOrdersQuery struct {
	customerID kernel.UUID
	guard      guard.ConstructorGuard
}

func NewRatableOrdersQuery(actor kernel.Actor) (RatableOrdersQuery, error) {
	if err := actor.Validate(); err != nil {
		return RatableOrdersQuery{}, err
	}
	if err := requireRole(actor, "list ratable orders", kernel.RoleCustomer); err != nil {
		return RatableOrdersQuery{}, err
	}
	return RatableOrdersQuery{customerID: actor.ID, guard: guard.NewConstructorGuard()}, nil
}

func (q RatableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrRatableOrdersQueryIsNotConstructed)
}

func (q RatableOrdersQuery) CustomerID() kernel.UUID { return q.customerID }

// RatableOrdersQueryResponse identifies one order waiting for a rating.
// DeliveredAt is the order's last status change.
type RatableOrdersQueryResponse struct {
	OrderID     kernel.UUID
	Total       decimal.Decimal
	DeliveredAt time.Time
}
