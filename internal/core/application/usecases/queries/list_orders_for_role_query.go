package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrListOrdersForRoleQueryIsNotConstructed = errors.New(
		"ListOrdersForRoleQuery must be created via NewListOrdersForRoleQuery constructor",
	)
)

// ListOrdersForRoleQuery lists the orders the actor may see, narrowed by filter.
// Visibility per role:
//   - Customer: own orders
//   - Kitchen: Pending, Confirmed, InPreparation and OutForDelivery
//   - Courier: orders assigned to them plus unassigned Confirmed/InPreparation orders
//   - SalesAdmin: everything
type ListOrdersForRoleQuery struct {
	actor  kernel.Actor
	filter order.Filter
	guard  guard.ConstructorGuard
}

func NewListOrdersForRoleQuery(actor kernel.Actor, filter order.Filter) (ListOrdersForRoleQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListOrdersForRoleQuery{}, err
	}
	return ListOrdersForRoleQuery{actor: actor, filter: filter, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrdersForRoleQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersForRoleQueryIsNotConstructed)
}

func (q ListOrdersForRoleQuery) Actor() kernel.Actor  { return q.actor }
func (q ListOrdersForRoleQuery) Filter() order.Filter { return q.filter }

// OrderView is an order with its courier slot resolved: Populated when the
// courier exists, otherwise the stored Reference or Unassigned.
type OrderView struct {
	Order   *order.Order
	Courier order.CourierRef
}
