package services_test

import (
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// euro-style note and coin set in cents, with a 50 note ceiling.
func defaultRules(t *testing.T) services.CashRules {
	t.Helper()
	rules, err := services.NewCashRules(
		[]int64{10000, 5000, 2000, 1000, 500, 200, 100, 50, 20, 10, 5, 2, 1},
		5000,
	)
	require.NoError(t, err)
	return rules
}

func money(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoneyFromString(s)
	require.NoError(t, err)
	return m
}

func TestNewCashRules(t *testing.T) {
	t.Run("should fail without denominations", func(t *testing.T) {
		_, err := services.NewCashRules(nil, 5000)

		require.ErrorIs(t, err, services.ErrInvalidAmount)
	})

	t.Run("should fail with non-positive denomination", func(t *testing.T) {
		_, err := services.NewCashRules([]int64{1000, 0}, 5000)

		require.ErrorIs(t, err, services.ErrInvalidAmount)
	})

	t.Run("should fail with non-positive ceiling", func(t *testing.T) {
		_, err := services.NewCashRules([]int64{1000}, 0)

		require.ErrorIs(t, err, services.ErrInvalidAmount)
	})
}

func TestCashReconciler_Reconcile(t *testing.T) {
	reconciler := services.NewCashReconciler(defaultRules(t))

	t.Run("should default to exact payment when tendered is absent", func(t *testing.T) {
		result, err := reconciler.Reconcile(money(t, "21.00"), nil)

		require.NoError(t, err)
		assert.Equal(t, "21.00", result.Tendered.String())
		assert.Equal(t, "0.00", result.ChangeDue.String())
	})

	t.Run("should compute change for accepted note", func(t *testing.T) {
		tendered := money(t, "20.00")

		result, err := reconciler.Reconcile(money(t, "16.50"), &tendered)

		require.NoError(t, err)
		assert.Equal(t, "20.00", result.Tendered.String())
		assert.Equal(t, "3.50", result.ChangeDue.String())
	})

	t.Run("should accept exact tendered amount", func(t *testing.T) {
		tendered := money(t, "21.00")

		result, err := reconciler.Reconcile(money(t, "21.00"), &tendered)

		require.NoError(t, err)
		assert.Equal(t, "0.00", result.ChangeDue.String())
	})

	t.Run("should reject insufficient payment", func(t *testing.T) {
		tendered := money(t, "15.00")

		_, err := reconciler.Reconcile(money(t, "16.50"), &tendered)

		require.ErrorIs(t, err, services.ErrInsufficientPayment)
	})

	t.Run("should reject note above ceiling", func(t *testing.T) {
		tendered := money(t, "100.00")

		_, err := reconciler.Reconcile(money(t, "8.00"), &tendered)

		require.ErrorIs(t, err, services.ErrDenominationNotAccepted)
	})

	t.Run("should accept mix of notes under ceiling", func(t *testing.T) {
		tendered := money(t, "60.00")

		result, err := reconciler.Reconcile(money(t, "58.00"), &tendered)

		require.NoError(t, err)
		assert.Equal(t, "2.00", result.ChangeDue.String())
	})

	t.Run("should reject amount not composable from denominations", func(t *testing.T) {
		rules, err := services.NewCashRules([]int64{5000, 2000, 1000}, 5000)
		require.NoError(t, err)
		coarse := services.NewCashReconciler(rules)
		tendered := money(t, "25.00")

		_, err = coarse.Reconcile(money(t, "20.00"), &tendered)

		require.ErrorIs(t, err, services.ErrDenominationNotAccepted)
	})

	t.Run("should accept zero total with absent tendered", func(t *testing.T) {
		result, err := reconciler.Reconcile(kernel.ZeroMoney(), nil)

		require.NoError(t, err)
		assert.True(t, result.ChangeDue.IsZero())
	})
}
