package kernel_test

import (
	"math"
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("should create money from decimal", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.NewFromFloat(16.50))

		require.NoError(t, err)
		assert.Equal(t, "16.50", m.String())
	})

	t.Run("should round to two decimals half-up", func(t *testing.T) {
		cases := map[float64]string{
			1.005:  "1.01",
			1.004:  "1.00",
			2.675:  "2.68",
			0.125:  "0.13",
			10.999: "11.00",
		}

		for input, expected := range cases {
			m, err := kernel.NewMoneyFromFloat(input)

			require.NoError(t, err)
			assert.Equal(t, expected, m.String(), "rounding %v", input)
		}
	})

	t.Run("should reject negative amounts", func(t *testing.T) {
		_, err := kernel.NewMoneyFromFloat(-0.01)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject non-finite amounts", func(t *testing.T) {
		for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
			_, err := kernel.NewMoneyFromFloat(v)

			require.Error(t, err)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})

	t.Run("should parse from string", func(t *testing.T) {
		m, err := kernel.NewMoneyFromString("21.00")

		require.NoError(t, err)
		assert.Equal(t, int64(2100), m.Cents())
	})

	t.Run("should reject malformed string", func(t *testing.T) {
		_, err := kernel.NewMoneyFromString("twenty")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	t.Run("add sums amounts", func(t *testing.T) {
		a, _ := kernel.NewMoneyFromFloat(10.25)
		b, _ := kernel.NewMoneyFromFloat(5.80)

		assert.Equal(t, "16.05", a.Add(b).String())
	})

	t.Run("sub computes difference", func(t *testing.T) {
		a, _ := kernel.NewMoneyFromFloat(20.00)
		b, _ := kernel.NewMoneyFromFloat(16.50)

		diff, err := a.Sub(b)

		require.NoError(t, err)
		assert.Equal(t, "3.50", diff.String())
	})

	t.Run("sub fails when result would be negative", func(t *testing.T) {
		a, _ := kernel.NewMoneyFromFloat(5.00)
		b, _ := kernel.NewMoneyFromFloat(10.00)

		_, err := a.Sub(b)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("mul applies per-unit rate with rounding", func(t *testing.T) {
		rate, _ := kernel.NewMoneyFromFloat(1.50)

		payout, err := rate.MulFloat(3.333)

		require.NoError(t, err)
		assert.Equal(t, "5.00", payout.String())
	})

	t.Run("mul rejects negative factor", func(t *testing.T) {
		rate, _ := kernel.NewMoneyFromFloat(1.50)

		_, err := rate.MulFloat(-1)

		require.Error(t, err)
	})
}

func TestMoney_Comparison(t *testing.T) {
	a, _ := kernel.NewMoneyFromFloat(10.00)
	b, _ := kernel.NewMoneyFromFloat(20.00)
	c, _ := kernel.NewMoneyFromString("10.00")

	assert.True(t, a.LessThan(b))
	assert.True(t, b.GreaterThan(a))
	assert.True(t, a.IsEqual(c))
	assert.False(t, a.IsEqual(b))
	assert.True(t, kernel.ZeroMoney().IsZero())
	assert.False(t, a.IsZero())
}
