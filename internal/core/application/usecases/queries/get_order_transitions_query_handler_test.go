package queries_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrderTransitionsQueryHandler(t *testing.T) {
	s := newStore(t)
	handler := queries.NewGetOrderTransitionsQueryHandler(s.orders, s.couriers, s.log)
	ctx := context.Background()

	kitchen := actorOf(kernel.RoleKitchen)
	o := s.addOrder(orderFixture{status: order.InPreparation})
	for _, change := range []order.StatusChange{
		{OrderID: o.ID(), From: order.Pending, To: order.Confirmed, Role: kernel.RoleKitchen, ActorID: kitchen.ID, At: baseTime},
		{OrderID: o.ID(), From: order.Confirmed, To: order.InPreparation, Role: kernel.RoleKitchen, ActorID: kitchen.ID, At: baseTime.Add(time.Minute)},
	} {
		require.NoError(t, s.log.Append(ctx, change))
	}

	handle := func(actor kernel.Actor, orderID kernel.UUID) (queries.GetOrderTransitionsQueryResponse, error) {
		query, err := queries.NewGetOrderTransitionsQuery(actor, orderID)
		require.NoError(t, err)
		return handler.Handle(ctx, query)
	}

	t.Run("out for delivery hidden while unassigned", func(t *testing.T) {
		resp, err := handle(kitchen, o.ID())
		require.NoError(t, err)

		assert.Equal(t, order.InPreparation, resp.Current)
		assert.Equal(t, []order.Status{order.Cancelled}, resp.Allowed)
		require.Len(t, resp.History, 2)
		assert.Equal(t, order.Confirmed, resp.History[0].To)
		assert.Equal(t, order.InPreparation, resp.History[1].To)
	})

	t.Run("assigned order offers out for delivery", func(t *testing.T) {
		c, _ := s.addCourier(courier.Available)
		assigned := s.addOrder(orderFixture{status: order.InPreparation, courierID: idPtr(c.ID())})

		resp, err := handle(kitchen, assigned.ID())
		require.NoError(t, err)
		assert.Equal(t, []order.Status{order.OutForDelivery, order.Cancelled}, resp.Allowed)
		assert.Empty(t, resp.History)
	})

	t.Run("customer of another order is forbidden", func(t *testing.T) {
		_, err := handle(actorOf(kernel.RoleCustomer), o.ID())
		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("owner sees no allowed targets", func(t *testing.T) {
		resp, err := handle(kernel.Actor{ID: o.CustomerID(), Role: kernel.RoleCustomer}, o.ID())
		require.NoError(t, err)
		assert.Empty(t, resp.Allowed)
	})

	t.Run("unknown order", func(t *testing.T) {
		_, err := handle(kitchen, kernel.NewUUID())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestValidTransitions(t *testing.T) {
	assert.Equal(t,
		[]order.Status{order.Confirmed, order.Cancelled},
		queries.ValidTransitions(order.Pending, kernel.RoleKitchen))
	assert.Equal(t,
		[]order.Status{order.Delivered},
		queries.ValidTransitions(order.OutForDelivery, kernel.RoleCourier))
	assert.Empty(t, queries.ValidTransitions(order.Delivered, kernel.RoleSalesAdmin))
}
