package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetReadyOrdersQueryHandler retrieves the ready-order board from the database.
// Rows come straight from the orders table without rebuilding aggregates.
//
// Example:
//
//	handler := NewGetReadyOrdersQueryHandler(db)
//	query := NewGetReadyOrdersQuery()
//
//	readyOrders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get ready orders: %v", err)
//	    return err
//	}
type GetReadyOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetReadyOrdersQueryHandler creates a handler for ready-order queries.
// Requires a GORM database connection for query execution.
func NewGetReadyOrdersQueryHandler(db *gorm.DB) GetReadyOrdersQueryHandler {
	return GetReadyOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all orders in Ready status, both
// awaiting dispatch and already offered to a courier.
// Results are sorted by readiness time so the oldest order tops the board.
func (h GetReadyOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetReadyOrdersQuery,
) ([]GetReadyOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetReadyOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			courier_id,
			total,
			pickup_latitude,
			pickup_longitude
		FROM orders
		WHERE status = ?
		ORDER BY ready_at
	`, int(order.Ready)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var orderResp GetReadyOrdersQueryResponse
		var id uuid.UUID
		var courierID *uuid.UUID
		var total string
		var pickupLat, pickupLon float64

		err = rows.Scan(
			&id,
			&courierID,
			&total,
			&pickupLat,
			&pickupLon,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		orderResp.ID = orderID
		orderResp.Total = total

		if courierID != nil {
			cID, cErr := kernel.UUIDFromBytes((*courierID)[:])
			if cErr != nil {
				return nil, cErr
			}
			orderResp.CourierID = &cID
		}

		pickup, pointErr := kernel.NewGeoPoint(pickupLat, pickupLon)
		if pointErr != nil {
			return nil, pointErr
		}
		orderResp.Pickup = pickup
		orders = append(orders, orderResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
