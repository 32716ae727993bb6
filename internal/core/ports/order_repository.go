package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// Update performs an optimistic concurrency check: the write succeeds only
// if the stored version still matches the aggregate's loaded version, and
// fails with errs.ErrConflictingUpdate otherwise. Callers losing the race
// must reload and retry with fresh state.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, bumping its
	// version. Fails with errs.ErrConflictingUpdate when a concurrent writer
	// got there first.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Fails with errs.ErrObjectNotFound when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllReadyUnassigned retrieves orders in Ready status with no courier
	// assigned, oldest first. These are the orders the dispatch retry job
	// works through.
	GetAllReadyUnassigned(ctx context.Context) ([]*order.Order, error)
}
