package commands_test

import (
	"testing"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/require"
)

func testMoney(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoneyFromString(s)
	require.NoError(t, err)
	return m
}

func testDispatcher(t *testing.T) services.Dispatcher {
	t.Helper()
	return services.NewDispatcher(services.NewTariff(testMoney(t, "2.00"), testMoney(t, "1.00")))
}

func testReconciler(t *testing.T) services.CashReconciler {
	t.Helper()
	rules, err := services.NewCashRules(
		[]int64{10000, 5000, 2000, 1000, 500, 200, 100, 50, 20, 10, 5, 2, 1},
		5000,
	)
	require.NoError(t, err)
	return services.NewCashReconciler(rules)
}

// testOrder builds an order at the given status. Cash orders carry the
// tendered amount when provided.
func testOrder(t *testing.T, status order.Status, method order.PaymentMethod, tendered *string) *order.Order {
	t.Helper()

	pickup, err := kernel.NewGeoPoint(0, 0)
	require.NoError(t, err)
	dropoff, err := kernel.NewGeoPoint(0.01, 0.01)
	require.NoError(t, err)

	address, err := order.NewAddress("Baker Street", "221b", "", "", "London", "", &dropoff)
	require.NoError(t, err)

	item, err := order.NewItem("Margherita", 1, testMoney(t, "16.50"))
	require.NoError(t, err)

	var tenderedMoney *kernel.Money
	if tendered != nil {
		m := testMoney(t, *tendered)
		tenderedMoney = &m
	}

	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), pickup, address,
		[]order.Item{item}, method,
		testMoney(t, "16.50"), testMoney(t, "3.50"),
		testMoney(t, "1.00"), testMoney(t, "0.00"),
		tenderedMoney,
	)
	require.NoError(t, err)

	if status == order.Pending {
		return o
	}
	require.NoError(t, o.Confirm())
	if status == order.Confirmed {
		return o
	}
	require.NoError(t, o.MarkReady())
	require.Equal(t, status, order.Ready)
	return o
}

func testEligibleCourier(t *testing.T) *courier.Courier {
	t.Helper()

	c, err := courier.NewCourier(kernel.NewUUID(), "Rider", courier.VehicleBicycle)
	require.NoError(t, err)

	location, err := kernel.NewGeoPoint(0, 0.002)
	require.NoError(t, err)

	c.Approve()
	c.SetAvailable(true)
	require.NoError(t, c.UpdateLocation(location))
	return c
}

// testDelivery builds a delivery for the order at the given status, driven
// through its real transitions.
func testDelivery(t *testing.T, o *order.Order, courierID kernel.UUID, status delivery.Status) *delivery.Delivery {
	t.Helper()

	dropoff := o.Address().Location()
	require.NotNil(t, dropoff)

	d, err := delivery.NewDelivery(
		kernel.NewUUID(), o.ID(), courierID,
		o.PickupLocation(), *dropoff, 1.5, testMoney(t, "3.50"),
	)
	require.NoError(t, err)

	if status == delivery.Offered {
		return d
	}
	require.NoError(t, d.Accept(courierID))
	if status == delivery.Accepted {
		return d
	}
	require.NoError(t, d.Collect(courierID))
	require.Equal(t, status, delivery.Collected)
	return d
}
