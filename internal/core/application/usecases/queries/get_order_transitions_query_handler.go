package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// GetOrderTransitionsQueryHandler tells an actor where an order can go next
// and how it got to its current status.
type GetOrderTransitionsQueryHandler struct {
	orders   ports.OrderRepository
	couriers ports.CourierRepository
	log      ports.StatusChangeLog
}

// NewGetOrderTransitionsQueryHandler reads through the repositories outside any
// unit of work.
func NewGetOrderTransitionsQueryHandler(
	orders ports.OrderRepository,
	couriers ports.CourierRepository,
	log ports.StatusChangeLog,
) *GetOrderTransitionsQueryHandler {
	return &GetOrderTransitionsQueryHandler{
		orders:   orders,
		couriers: couriers,
		log:      log,
	}
}

// Handle hides orders outside the actor's scope behind a ForbiddenError.
// OutForDelivery is only offered once a courier is assigned.
func (h *GetOrderTransitionsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderTransitionsQuery,
) (GetOrderTransitionsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderTransitionsQueryResponse{}, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return GetOrderTransitionsQueryResponse{}, err
	}

	scope, found, err := scopeFor(ctx, h.couriers, query.Actor(), order.Filter{})
	if err != nil {
		return GetOrderTransitionsQueryResponse{}, err
	}
	if !found || !scope.Visible(o) {
		return GetOrderTransitionsQueryResponse{}, errs.NewForbiddenError("view order transitions", "order is outside the caller's scope")
	}

	history, err := h.log.ListByOrder(ctx, o.ID())
	if err != nil {
		return GetOrderTransitionsQueryResponse{}, err
	}

	return GetOrderTransitionsQueryResponse{
		OrderID: o.ID(),
		Current: o.Status(),
		Allowed: o.AllowedTargets(query.Actor().Role),
		History: history,
	}, nil
}
