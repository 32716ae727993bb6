package services

import (
	"dispatch/internal/core/domain/model/kernel"
)

// Tariff is the fee schedule used for delivery pricing: a base amount plus a
// per-kilometer rate. The same schedule prices both the customer-facing
// delivery fee and the courier payout; callers construct separate tariffs
// when the two diverge.
type Tariff struct {
	base  kernel.Money
	perKm kernel.Money
}

// NewTariff creates a fee schedule from a base amount and a per-kilometer rate.
func NewTariff(base, perKm kernel.Money) Tariff {
	return Tariff{base: base, perKm: perKm}
}

// Base returns the fixed component of the tariff.
func (t Tariff) Base() kernel.Money { return t.base }

// PerKm returns the per-kilometer rate of the tariff.
func (t Tariff) PerKm() kernel.Money { return t.perKm }

// Amount prices a trip of the given length: base + perKm * distanceKm,
// rounded to 2 decimals.
func (t Tariff) Amount(distanceKm float64) (kernel.Money, error) {
	variable, err := t.perKm.MulFloat(distanceKm)
	if err != nil {
		return kernel.Money{}, err
	}

	return t.base.Add(variable), nil
}
