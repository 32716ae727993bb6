package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery aggregates.
//
// Update performs the same optimistic concurrency check as OrderRepository:
// concurrent writers of the same delivery are serialized by version, the
// loser failing with errs.ErrConflictingUpdate.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate to storage.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery aggregate, bumping its
	// version. Fails with errs.ErrConflictingUpdate when a concurrent writer
	// got there first.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a delivery aggregate by its unique identifier.
	// Fails with errs.ErrObjectNotFound when no such delivery exists.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetActiveByOrderID retrieves the non-terminal delivery for an order.
	// At most one such delivery exists at any time. Fails with
	// errs.ErrObjectNotFound when the order has no active delivery.
	GetActiveByOrderID(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error)

	// GetActiveByCourierID retrieves the non-terminal delivery a courier is
	// currently working, if any. Fails with errs.ErrObjectNotFound when the
	// courier has no active delivery.
	GetActiveByCourierID(ctx context.Context, courierID kernel.UUID) (*delivery.Delivery, error)

	// GetAllStaleOffered retrieves deliveries still in Offered status whose
	// offer is older than the given cutoff. The offer timeout job cancels
	// these and returns their orders to the dispatch pool.
	GetAllStaleOffered(ctx context.Context, olderThan time.Time) ([]*delivery.Delivery, error)
}
