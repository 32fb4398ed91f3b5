package queries

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// ListOrdersForRoleQueryHandler lists the orders an actor's role may see.
type ListOrdersForRoleQueryHandler struct {
	orders   ports.OrderRepository
	couriers ports.CourierRepository
}

// NewListOrdersForRoleQueryHandler creates the handler. couriers resolves the
// calling courier and the couriers shown on each order.
func NewListOrdersForRoleQueryHandler(
	orders ports.OrderRepository,
	couriers ports.CourierRepository,
) *ListOrdersForRoleQueryHandler {
	return &ListOrdersForRoleQueryHandler{
		orders:   orders,
		couriers: couriers,
	}
}

// Handle returns the visible orders newest first. A courier user without a
// courier profile sees nothing.
func (h *ListOrdersForRoleQueryHandler) Handle(ctx context.Context, query ListOrdersForRoleQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	scope, found, err := scopeFor(ctx, h.couriers, query.Actor(), query.Filter())
	if err != nil {
		return nil, err
	}
	if !found {
		return []OrderView{}, nil
	}

	orders, err := h.orders.ListForScope(ctx, scope)
	if err != nil {
		return nil, err
	}

	summaries, err := h.courierSummaries(ctx, orders)
	if err != nil {
		return nil, err
	}

	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		ref := o.Courier()
		if id, ok := ref.ID(); ok {
			if summary, exists := summaries[id]; exists {
				ref = order.PopulatedCourier(summary)
			}
		}
		views = append(views, OrderView{Order: o, Courier: ref})
	}
	return views, nil
}

func (h *ListOrdersForRoleQueryHandler) courierSummaries(
	ctx context.Context,
	orders []*order.Order,
) (map[kernel.UUID]order.CourierSummary, error) {
	ids := make([]kernel.UUID, 0)
	seen := make(map[kernel.UUID]bool)
	for _, o := range orders {
		if id := o.CourierID(); id != nil && !seen[*id] {
			seen[*id] = true
			ids = append(ids, *id)
		}
	}
	if len(ids) == 0 {
		return map[kernel.UUID]order.CourierSummary{}, nil
	}

	couriers, err := h.couriers.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	summaries := make(map[kernel.UUID]order.CourierSummary, len(couriers))
	for _, c := range couriers {
		summaries[c.ID()] = summarize(c)
	}
	return summaries, nil
}

func summarize(c *courier.Courier) order.CourierSummary {
	return order.CourierSummary{
		ID:                c.ID(),
		UserID:            c.UserID(),
		OperationalStatus: c.OperationalStatus().String(),
		Location:          c.Location(),
		AverageRating:     c.AverageRating(),
	}
}

// scopeFor resolves the courier profile of courier actors. found is false when
// a courier actor has no profile.
func scopeFor(
	ctx context.Context,
	couriers ports.CourierRepository,
	actor kernel.Actor,
	filter order.Filter,
) (order.Scope, bool, error) {
	var courierID *kernel.UUID
	if actor.Is(kernel.RoleCourier) {
		c, err := couriers.GetByUserID(ctx, actor.ID)
		if err != nil {
			if errors.Is(err, errs.ErrObjectNotFound) {
				return order.Scope{}, false, nil
			}
			return order.Scope{}, false, err
		}
		id := c.ID()
		courierID = &id
	}

	scope, err := order.NewScope(actor, courierID, filter)
	if err != nil {
		return order.Scope{}, false, err
	}
	return scope, true, nil
}
