package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCart(t *testing.T, customerID kernel.UUID) (*cart.Cart, kernel.ItemRef, kernel.ItemRef) {
	t.Helper()
	c, err := cart.New(customerID)
	require.NoError(t, err)

	product, err := kernel.NewItemRef(kernel.ItemKindProduct, kernel.NewUUID())
	require.NoError(t, err)
	combo, err := kernel.NewItemRef(kernel.ItemKindCombo, kernel.NewUUID())
	require.NoError(t, err)

	require.NoError(t, c.AddItem(product, "Ceviche", decimal.RequireFromString("18.50"), 2))
	require.NoError(t, c.AddItem(combo, "Family combo", decimal.RequireFromString("25"), 1))
	return c, product, combo
}

func TestNewCheckoutCommand(t *testing.T) {
	customerID := kernel.NewUUID()
	c, _, _ := newTestCart(t, customerID)

	t.Run("valid", func(t *testing.T) {
		cmd, err := commands.NewCheckoutCommand(customerID, c.Snapshot(), "  Av. Larco 345 ", "card", " ring twice ")

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.False(t, cmd.OrderID().IsZero())
		assert.Equal(t, "Av. Larco 345", cmd.DeliveryAddress())
		assert.Equal(t, "ring twice", cmd.Observations())
		assert.Len(t, cmd.Items(), 2)
	})

	t.Run("empty cart", func(t *testing.T) {
		empty, err := cart.New(customerID)
		require.NoError(t, err)

		_, err = commands.NewCheckoutCommand(customerID, empty.Snapshot(), "Av. Larco 345", "card", "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("blank address and payment method", func(t *testing.T) {
		_, err := commands.NewCheckoutCommand(customerID, c.Snapshot(), "  ", "", "")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "deliveryAddress")
		assert.Contains(t, err.Error(), "paymentMethod")
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		require.ErrorIs(t, commands.CheckoutCommand{}.Validate(), commands.ErrCheckoutCommandIsNotConstructed)
	})
}
