// Package queries contains the read side of the CQRS split: handlers that
// bypass the aggregates and read projection rows straight from the database.
package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetReadyOrdersQueryIsNotConstructed = errors.New(
	"GetReadyOrdersQuery must be created via NewGetReadyOrdersQuery constructor",
)

// GetReadyOrdersQuery retrieves orders waiting for pickup: ready status,
// with or without a courier secured. Used by the dispatch dashboard.
type GetReadyOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetReadyOrdersQuery creates a query for the ready-order board.
func NewGetReadyOrdersQuery() GetReadyOrdersQuery {
	return GetReadyOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetReadyOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetReadyOrdersQueryIsNotConstructed)
}

// GetReadyOrdersQueryResponse is one row of the ready-order board.
type GetReadyOrdersQueryResponse struct {
	ID        kernel.UUID
	Total     string
	CourierID *kernel.UUID
	Pickup    kernel.GeoPoint
}
