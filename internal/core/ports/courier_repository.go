// Package ports defines repository interfaces for the dispatch domain.
// These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates.
type CourierRepository interface {
	// Add persists a new courier aggregate to storage.
	Add(ctx context.Context, courier *courier.Courier) error

	// Update persists changes to an existing courier aggregate.
	Update(ctx context.Context, courier *courier.Courier) error

	// Get retrieves a courier aggregate by its unique identifier.
	// Fails with errs.ErrObjectNotFound when no such courier exists.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetAllEligible retrieves couriers that can take a delivery right now:
	// approved, available, and with a known position.
	GetAllEligible(ctx context.Context) ([]*courier.Courier, error)

	// Claim atomically flips the courier's availability from true to false.
	// It reports false when the courier was already claimed by a concurrent
	// dispatch; the caller must then pick another courier. The flip is a
	// single compare-and-set, so two racing dispatches can never both win
	// the same courier.
	Claim(ctx context.Context, id kernel.UUID) (bool, error)

	// Release restores the courier's availability after a cancelled delivery.
	Release(ctx context.Context, id kernel.UUID) error
}
