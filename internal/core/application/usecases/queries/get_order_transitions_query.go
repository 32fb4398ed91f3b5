package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetOrderTransitionsQueryIsNotConstructed = errors.New(
		"GetOrderTransitionsQuery must be created via NewGetOrderTransitionsQuery constructor",
	)
)

// GetOrderTransitionsQuery returns the statuses the actor may move an order to
// next, together with the order's status history.
type GetOrderTransitionsQuery struct {
	actor   kernel.Actor
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetOrderTransitionsQuery(actor kernel.Actor, orderID kernel.UUID) (GetOrderTransitionsQuery, error) {
	if err := actor.Validate(); err != nil {
		return GetOrderTransitionsQuery{}, err
	}
	if err := orderID.Validate(); err != nil {
		return GetOrderTransitionsQuery{}, errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	return GetOrderTransitionsQuery{actor: actor, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderTransitionsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTransitionsQueryIsNotConstructed)
}

func (q GetOrderTransitionsQuery) Actor() kernel.Actor  { return q.actor }
func (q GetOrderTransitionsQuery) OrderID() kernel.UUID { return q.orderID }

type GetOrderTransitionsQueryResponse struct {
	OrderID kernel.UUID
	Current order.Status
	Allowed []order.Status
	History []order.StatusChange
}

// ValidTransitions is the display form of the transition table: the targets
// role may choose from status.
func ValidTransitions(status order.Status, role kernel.Role) []order.Status {
	return status.AllowedTargets(role)
}
