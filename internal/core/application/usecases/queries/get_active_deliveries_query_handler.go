package queries

import (
	"context"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveDeliveriesQueryHandler retrieves in-flight deliveries from the database.
// Terminal deliveries are filtered out to show only the current courier workload.
type GetActiveDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveDeliveriesQueryHandler creates a handler for in-flight delivery queries.
// Requires a GORM database connection for query execution.
func NewGetActiveDeliveriesQueryHandler(db *gorm.DB) GetActiveDeliveriesQueryHandler {
	return GetActiveDeliveriesQueryHandler{db: db}
}

// Handle executes the query to retrieve all deliveries not yet delivered or
// cancelled. Results are sorted by offer time, oldest first.
func (h GetActiveDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetActiveDeliveriesQuery,
) ([]GetActiveDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	deliveries := make([]GetActiveDeliveriesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			courier_id,
			status,
			distance_km,
			payout
		FROM deliveries
		WHERE status NOT IN (?, ?)
		ORDER BY offered_at
	`, int(delivery.Delivered), int(delivery.Cancelled)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var deliveryResp GetActiveDeliveriesQueryResponse
		var id, orderID, courierID uuid.UUID
		var status int
		var distanceKm float64
		var payout string

		err = rows.Scan(
			&id,
			&orderID,
			&courierID,
			&status,
			&distanceKm,
			&payout,
		)
		if err != nil {
			return nil, err
		}

		deliveryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		deliveryResp.ID = deliveryID

		oID, oErr := kernel.UUIDFromBytes(orderID[:])
		if oErr != nil {
			return nil, oErr
		}
		deliveryResp.OrderID = oID

		cID, cErr := kernel.UUIDFromBytes(courierID[:])
		if cErr != nil {
			return nil, cErr
		}
		deliveryResp.CourierID = cID

		deliveryResp.Status = delivery.Status(status).String()
		deliveryResp.DistanceKm = distanceKm
		deliveryResp.Payout = payout
		deliveries = append(deliveries, deliveryResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
