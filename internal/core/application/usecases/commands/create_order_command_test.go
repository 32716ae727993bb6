package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateOrderParams() commands.CreateOrderParams {
	dropLat, dropLon := 51.5100, -0.1200
	return commands.CreateOrderParams{
		OrderID:          kernel.NewUUID(),
		RestaurantID:     kernel.NewUUID(),
		PickupLatitude:   51.5237,
		PickupLongitude:  -0.1586,
		Street:           "Baker Street",
		Number:           "221b",
		City:             "London",
		PostalCode:       "NW1 6XE",
		DropoffLatitude:  &dropLat,
		DropoffLongitude: &dropLon,
		Items: []commands.CreateOrderItem{
			{Name: "Margherita", Quantity: 2, UnitPrice: "8.25"},
		},
		PaymentMethod: "cash",
		Subtotal:      "16.50",
		DeliveryFee:   "3.50",
		ServiceFee:    "1.00",
		Discount:      "0.00",
	}
}

func TestNewCreateOrderCommand(t *testing.T) {
	t.Run("should create command from valid params", func(t *testing.T) {
		params := validCreateOrderParams()

		cmd, err := commands.NewCreateOrderCommand(params)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, order.PaymentCash, cmd.PaymentMethod())
		assert.Len(t, cmd.Items(), 1)
		assert.Equal(t, "16.50", cmd.Subtotal().String())
		assert.Nil(t, cmd.Tendered())
	})

	t.Run("should parse announced tendered amount", func(t *testing.T) {
		params := validCreateOrderParams()
		tendered := "50.00"
		params.Tendered = &tendered

		cmd, err := commands.NewCreateOrderCommand(params)

		require.NoError(t, err)
		require.NotNil(t, cmd.Tendered())
		assert.Equal(t, "50.00", cmd.Tendered().String())
	})

	t.Run("should fail with invalid order ID", func(t *testing.T) {
		params := validCreateOrderParams()
		params.OrderID = kernel.UUID{}

		_, err := commands.NewCreateOrderCommand(params)

		require.Error(t, err)
	})

	t.Run("should fail with out-of-range pickup coordinates", func(t *testing.T) {
		params := validCreateOrderParams()
		params.PickupLatitude = 91

		_, err := commands.NewCreateOrderCommand(params)

		require.Error(t, err)
	})

	t.Run("should fail without items", func(t *testing.T) {
		params := validCreateOrderParams()
		params.Items = nil

		_, err := commands.NewCreateOrderCommand(params)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "order items")
	})

	t.Run("should fail with malformed unit price", func(t *testing.T) {
		params := validCreateOrderParams()
		params.Items[0].UnitPrice = "eight"

		_, err := commands.NewCreateOrderCommand(params)

		require.Error(t, err)
	})

	t.Run("should fail with unknown payment method", func(t *testing.T) {
		params := validCreateOrderParams()
		params.PaymentMethod = "barter"

		_, err := commands.NewCreateOrderCommand(params)

		require.Error(t, err)
	})

	t.Run("should reject zero-value command", func(t *testing.T) {
		var cmd commands.CreateOrderCommand

		require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
	})
}

func TestNewAcceptDeliveryCommand(t *testing.T) {
	t.Run("should create command with valid IDs", func(t *testing.T) {
		cmd, err := commands.NewAcceptDeliveryCommand(kernel.NewUUID(), kernel.NewUUID())

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
	})

	t.Run("should fail with invalid courier ID", func(t *testing.T) {
		_, err := commands.NewAcceptDeliveryCommand(kernel.NewUUID(), kernel.UUID{})

		require.Error(t, err)
	})

	t.Run("should reject zero-value command", func(t *testing.T) {
		var cmd commands.AcceptDeliveryCommand

		require.ErrorIs(t, cmd.Validate(), commands.ErrAcceptDeliveryCommandIsNotConstructed)
	})
}
