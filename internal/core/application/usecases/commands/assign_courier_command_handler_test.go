package commands_test

import (
	"context"
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

func TestAssignCourierCommandHandler_Handle(t *testing.T) {
	admin := actorOf(kernel.RoleSalesAdmin)
	eta := time.Now().Add(40 * time.Minute)

	t.Run("assigns without changing status", func(t *testing.T) {
		store := newMemoryStore()
		c, _ := newTestCourier(t, courier.Available)
		o := newOrderInStatus(t, kernel.NewUUID(), order.Confirmed, nil)
		store.put(t, c, o)

		cmd, err := commands.NewAssignCourierCommand(admin, o.ID(), c.ID(), &eta)
		require.NoError(t, err)

		err = commands.NewAssignCourierCommandHandler(newMemoryFactory(store)).Handle(context.Background(), cmd)

		require.NoError(t, err)
		stored := store.order(t, o.ID())
		assert.True(t, stored.IsAssignedTo(c.ID()))
		assert.Equal(t, order.Confirmed, stored.Status())
		require.NotNil(t, stored.EstimatedDeliveryAt())
		assert.WithinDuration(t, eta, *stored.EstimatedDeliveryAt(), time.Second)
	})

	t.Run("off duty courier is rejected", func(t *testing.T) {
		store := newMemoryStore()
		c, _ := newTestCourier(t, courier.OffDuty)
		o := newTestOrder(t, kernel.NewUUID())
		store.put(t, c, o)

		cmd, err := commands.NewAssignCourierCommand(admin, o.ID(), c.ID(), nil)
		require.NoError(t, err)

		err = commands.NewAssignCourierCommandHandler(newMemoryFactory(store)).Handle(context.Background(), cmd)

		require.ErrorIs(t, err, commands.ErrCourierOffDuty)
		require.True(t, errs.IsValidation(err))
		assert.Nil(t, store.order(t, o.ID()).CourierID())
	})

	t.Run("terminal order is rejected", func(t *testing.T) {
		store := newMemoryStore()
		c, _ := newTestCourier(t, courier.Available)
		o := newOrderInStatus(t, kernel.NewUUID(), order.Cancelled, nil)
		store.put(t, c, o)

		cmd, err := commands.NewAssignCourierCommand(admin, o.ID(), c.ID(), nil)
		require.NoError(t, err)

		err = commands.NewAssignCourierCommandHandler(newMemoryFactory(store)).Handle(context.Background(), cmd)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, 0, store.commits)
	})

	t.Run("unknown courier", func(t *testing.T) {
		store := newMemoryStore()
		o := newTestOrder(t, kernel.NewUUID())
		store.put(t, o)

		cmd, err := commands.NewAssignCourierCommand(admin, o.ID(), kernel.NewUUID(), nil)
		require.NoError(t, err)

		err = commands.NewAssignCourierCommandHandler(newMemoryFactory(store)).Handle(context.Background(), cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("only sales/admin may dispatch", func(t *testing.T) {
		store := newMemoryStore()
		cmd, err := commands.NewAssignCourierCommand(actorOf(kernel.RoleKitchen), kernel.NewUUID(), kernel.NewUUID(), nil)
		require.NoError(t, err)

		err = commands.NewAssignCourierCommandHandler(newMemoryFactory(store)).Handle(context.Background(), cmd)

		require.ErrorIs(t, err, errs.ErrForbidden)
	})
}

func TestUnassignCourierCommandHandler_Handle(t *testing.T) {
	admin := actorOf(kernel.RoleSalesAdmin)

	t.Run("clears courier and eta", func(t *testing.T) {
		store := newMemoryStore()
		courierID := kernel.NewUUID()
		o := newOrderInStatus(t, kernel.NewUUID(), order.InPreparation, &courierID)
		store.put(t, o)

		cmd, err := commands.NewUnassignCourierCommand(admin, o.ID())
		require.NoError(t, err)

		err = commands.NewUnassignCourierCommandHandler(memoryOrderFactory{newMemoryFactory(store)}).Handle(context.Background(), cmd)

		require.NoError(t, err)
		stored := store.order(t, o.ID())
		assert.Nil(t, stored.CourierID())
		assert.Nil(t, stored.EstimatedDeliveryAt())
	})

	for _, status := range []order.Status{order.OutForDelivery, order.Delivered} {
		t.Run("rejected when "+status.String(), func(t *testing.T) {
			store := newMemoryStore()
			courierID := kernel.NewUUID()
			o := newOrderInStatus(t, kernel.NewUUID(), status, &courierID)
			store.put(t, o)

			cmd, err := commands.NewUnassignCourierCommand(admin, o.ID())
			require.NoError(t, err)

			err = commands.NewUnassignCourierCommandHandler(memoryOrderFactory{newMemoryFactory(store)}).Handle(context.Background(), cmd)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
			assert.True(t, store.order(t, o.ID()).IsAssignedTo(courierID))
		})
	}
}
