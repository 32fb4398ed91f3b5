package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecordDeliveryCommand(t *testing.T) {
	courierActor := actorOf(kernel.RoleCourier)

	t.Run("rating out of range", func(t *testing.T) {
		bad := 6
		_, err := commands.NewRecordDeliveryCommand(courierActor, kernel.NewUUID(), time.Now(), &bad)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("missing delivery time", func(t *testing.T) {
		_, err := commands.NewRecordDeliveryCommand(courierActor, kernel.NewUUID(), time.Time{}, nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("only couriers record deliveries", func(t *testing.T) {
		_, err := commands.NewRecordDeliveryCommand(actorOf(kernel.RoleCustomer), kernel.NewUUID(), time.Now(), nil)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRecordDeliveryCommandHandler_Handle(t *testing.T) {
	setup := func(t *testing.T, status order.Status) (*memoryStore, *courier.Courier, kernel.Actor, *order.Order) {
		t.Helper()
		store := newMemoryStore()
		c, actor := newTestCourier(t, courier.OnDelivery)
		courierID := c.ID()
		o := newOrderInStatus(t, kernel.NewUUID(), status, &courierID)
		store.put(t, c, o)
		return store, c, actor, o
	}

	t.Run("records, delivers and frees the courier", func(t *testing.T) {
		store, c, actor, o := setup(t, order.OutForDelivery)
		rating := 5
		deliveredAt := time.Now()

		cmd, err := commands.NewRecordDeliveryCommand(actor, o.ID(), deliveredAt, &rating)
		require.NoError(t, err)

		err = commands.NewRecordDeliveryCommandHandler(newMemoryFactory(store)).Handle(context.Background(), cmd)

		require.NoError(t, err)
		assert.Equal(t, order.Delivered, store.order(t, o.ID()).Status())

		stored := store.courier(t, c.ID())
		require.Len(t, stored.History(), 1)
		assert.True(t, stored.HasDelivered(o.ID()))
		assert.Equal(t, 5, *stored.History()[0].CustomerRating())
		assert.Equal(t, courier.Available, stored.OperationalStatus())

		changes := store.changes()
		require.Len(t, changes, 1)
		assert.Equal(t, kernel.RoleCourier, changes[0].Role)
	})

	t.Run("second call is a no-op", func(t *testing.T) {
		store, c, actor, o := setup(t, order.OutForDelivery)
		handler := commands.NewRecordDeliveryCommandHandler(newMemoryFactory(store))

		cmd, err := commands.NewRecordDeliveryCommand(actor, o.ID(), time.Now(), nil)
		require.NoError(t, err)

		require.NoError(t, handler.Handle(context.Background(), cmd))
		commits := store.commits
		require.NoError(t, handler.Handle(context.Background(), cmd))

		assert.Len(t, store.courier(t, c.ID()).History(), 1)
		assert.Len(t, store.changes(), 1)
		assert.Equal(t, commits, store.commits)
	})

	t.Run("courier stays busy with other deliveries", func(t *testing.T) {
		store, c, actor, o := setup(t, order.OutForDelivery)
		courierID := c.ID()
		store.put(t, newOrderInStatus(t, kernel.NewUUID(), order.OutForDelivery, &courierID))

		cmd, err := commands.NewRecordDeliveryCommand(actor, o.ID(), time.Now(), nil)
		require.NoError(t, err)

		require.NoError(t, commands.NewRecordDeliveryCommandHandler(newMemoryFactory(store)).Handle(context.Background(), cmd))

		assert.Equal(t, courier.OnDelivery, store.courier(t, c.ID()).OperationalStatus())
	})

	t.Run("order not yet out for delivery", func(t *testing.T) {
		store, c, actor, o := setup(t, order.InPreparation)

		cmd, err := commands.NewRecordDeliveryCommand(actor, o.ID(), time.Now(), nil)
		require.NoError(t, err)

		err = commands.NewRecordDeliveryCommandHandler(newMemoryFactory(store)).Handle(context.Background(), cmd)

		require.ErrorIs(t, err, errs.ErrIllegalTransition)
		assert.Empty(t, store.courier(t, c.ID()).History())
		assert.Equal(t, order.InPreparation, store.order(t, o.ID()).Status())
	})

	t.Run("order of another courier", func(t *testing.T) {
		store, _, _, o := setup(t, order.OutForDelivery)
		intruder, intruderActor := newTestCourier(t, courier.Available)
		store.put(t, intruder)

		cmd, err := commands.NewRecordDeliveryCommand(intruderActor, o.ID(), time.Now(), nil)
		require.NoError(t, err)

		err = commands.NewRecordDeliveryCommandHandler(newMemoryFactory(store)).Handle(context.Background(), cmd)

		require.ErrorIs(t, err, errs.ErrForbidden)
		assert.Equal(t, order.OutForDelivery, store.order(t, o.ID()).Status())
	})

	t.Run("retry frees the courier after a failed release", func(t *testing.T) {
		store, c, actor, o := setup(t, order.OutForDelivery)
		factory := newMemoryFactory(store)
		factory.failOn["CourierRepository.Update"] = errors.New("connection reset")
		factory.failAt["CourierRepository.Update"] = 2
		handler := commands.NewRecordDeliveryCommandHandler(factory)

		cmd, err := commands.NewRecordDeliveryCommand(actor, o.ID(), time.Now(), nil)
		require.NoError(t, err)

		require.EqualError(t, handler.Handle(context.Background(), cmd), "connection reset")
		assert.Equal(t, order.Delivered, store.order(t, o.ID()).Status())
		assert.Equal(t, courier.OnDelivery, store.courier(t, c.ID()).OperationalStatus())

		factory.heal()
		require.NoError(t, handler.Handle(context.Background(), cmd))

		stored := store.courier(t, c.ID())
		assert.Equal(t, courier.Available, stored.OperationalStatus())
		assert.Len(t, stored.History(), 1)
		assert.Len(t, store.changes(), 1)
	})

	t.Run("retry finishes after a failed status change", func(t *testing.T) {
		store, c, actor, o := setup(t, order.OutForDelivery)
		factory := newMemoryFactory(store)
		factory.failOn["OrderRepository.Update"] = errors.New("connection reset")
		handler := commands.NewRecordDeliveryCommandHandler(factory)

		cmd, err := commands.NewRecordDeliveryCommand(actor, o.ID(), time.Now(), nil)
		require.NoError(t, err)

		require.EqualError(t, handler.Handle(context.Background(), cmd), "connection reset")
		assert.Equal(t, order.OutForDelivery, store.order(t, o.ID()).Status())

		factory.heal()
		require.NoError(t, handler.Handle(context.Background(), cmd))

		assert.Equal(t, order.Delivered, store.order(t, o.ID()).Status())
		stored := store.courier(t, c.ID())
		assert.Len(t, stored.History(), 1)
		assert.Equal(t, courier.Available, stored.OperationalStatus())
	})
}
