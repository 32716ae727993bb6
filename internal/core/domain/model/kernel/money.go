package kernel

import (
	"fmt"
	"math"

	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrAmountIsInvalid is returned when a monetary amount is negative,
// non-finite, or otherwise malformed.
var ErrAmountIsInvalid = errs.NewValueIsInvalidError("amount")

// Money is a fixed-point, non-negative monetary amount with two decimal
// digits of precision. Amounts are rounded half-up on construction and after
// every arithmetic operation, so business values like fees, payouts, and
// change never accumulate floating-point drift.
//
// Money is an immutable value object. The zero value is a valid zero amount.
//
// Example:
//
//	total, _ := kernel.NewMoneyFromFloat(16.50)
//	tendered, _ := kernel.NewMoneyFromFloat(20.00)
//	change, _ := tendered.Sub(total) // 3.50
type Money struct {
	amount decimal.Decimal
}

// NewMoney creates a Money value from a decimal amount.
// The amount must be non-negative; it is rounded to 2 decimals half-up.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s is negative", amount))
	}

	return Money{amount: amount.Round(2)}, nil
}

// NewMoneyFromFloat creates a Money value from a float64 amount.
// NaN, infinities, and negative values are rejected.
func NewMoneyFromFloat(amount float64) (Money, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%v is not a finite number", amount))
	}

	return NewMoney(decimal.NewFromFloat(amount))
}

// NewMoneyFromString parses a Money value from its decimal string form.
func NewMoneyFromString(amount string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}

	return NewMoney(d)
}

// ZeroMoney returns a zero amount.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// Amount returns the underlying decimal value.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Float64 returns the amount as a float64. Intended for read models and
// serialization, not for further arithmetic.
func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

// Cents returns the amount in whole cents.
func (m Money) Cents() int64 {
	return m.amount.Mul(decimal.NewFromInt(100)).IntPart()
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount).Round(2)}
}

// Sub returns the difference of two amounts.
// Fails if the result would be negative: Money never goes below zero.
func (m Money) Sub(other Money) (Money, error) {
	result := m.amount.Sub(other.amount)
	if result.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s - %s is negative", m.amount, other.amount))
	}

	return Money{amount: result.Round(2)}, nil
}

// MulFloat multiplies the amount by a non-negative factor, rounding half-up.
// Used for per-kilometer rate calculations.
func (m Money) MulFloat(factor float64) (Money, error) {
	if math.IsNaN(factor) || math.IsInf(factor, 0) || factor < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("factor",
			fmt.Errorf("%v is not a valid multiplier", factor))
	}

	return Money{amount: m.amount.Mul(decimal.NewFromFloat(factor)).Round(2)}, nil
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual compares two amounts for equality.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// LessThan reports whether m is strictly less than other.
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// GreaterThan reports whether m is strictly greater than other.
func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// String returns the amount formatted with two decimal places.
func (m Money) String() string {
	return m.amount.StringFixed(2)
}
