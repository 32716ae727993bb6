// Package deliveryrepo provides data transfer objects and mapping functions for delivery persistence.
// This package implements the repository pattern for the delivery domain aggregate, handling
// the conversion between domain entities and database representations.
package deliveryrepo

import (
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeliveryDTO represents the database structure for persisting delivery aggregates.
// The (order_id, status) index serves the active-delivery lookup; the
// (status, offered_at) index serves the stale-offer sweep.
type DeliveryDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index:idx_deliveries_order_status"`
	CourierID uuid.UUID `gorm:"type:uuid;not null;index"`

	PickupLatitude   float64 `gorm:"type:double precision;not null"`
	PickupLongitude  float64 `gorm:"type:double precision;not null"`
	DropoffLatitude  float64 `gorm:"type:double precision;not null"`
	DropoffLongitude float64 `gorm:"type:double precision;not null"`

	DistanceKm float64         `gorm:"type:double precision;not null"`
	Payout     decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Status int `gorm:"type:int;not null;index:idx_deliveries_order_status;index:idx_deliveries_status_offered"`

	OfferedAt   time.Time  `gorm:"not null;index:idx_deliveries_status_offered"`
	AcceptedAt  *time.Time `gorm:""`
	CollectedAt *time.Time `gorm:""`
	DeliveredAt *time.Time `gorm:""`
	CancelledAt *time.Time `gorm:""`

	Version int64 `gorm:"type:bigint;not null"`
}

// TableName specifies the database table name for delivery entities.
// Overrides GORM's default naming convention to use "deliveries".
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// fromDomain converts a delivery domain aggregate to its database representation.
func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	return DeliveryDTO{
		ID:               aggregate.ID().Bytes(),
		OrderID:          aggregate.OrderID().Bytes(),
		CourierID:        aggregate.CourierID().Bytes(),
		PickupLatitude:   aggregate.Pickup().Latitude(),
		PickupLongitude:  aggregate.Pickup().Longitude(),
		DropoffLatitude:  aggregate.Dropoff().Latitude(),
		DropoffLongitude: aggregate.Dropoff().Longitude(),
		DistanceKm:       aggregate.DistanceKm(),
		Payout:           aggregate.Payout().Amount(),
		Status:           int(aggregate.Status()),
		OfferedAt:        aggregate.OfferedAt(),
		AcceptedAt:       aggregate.AcceptedAt(),
		CollectedAt:      aggregate.CollectedAt(),
		DeliveredAt:      aggregate.DeliveredAt(),
		CancelledAt:      aggregate.CancelledAt(),
		Version:          aggregate.Version(),
	}
}

// toDomain converts a database DTO to a delivery domain aggregate.
// Reconstructs the complete aggregate using RestoreDelivery.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	pickup, err := kernel.NewGeoPoint(dto.PickupLatitude, dto.PickupLongitude)
	if err != nil {
		return nil, err
	}

	dropoff, err := kernel.NewGeoPoint(dto.DropoffLatitude, dto.DropoffLongitude)
	if err != nil {
		return nil, err
	}

	payout, err := kernel.NewMoney(dto.Payout)
	if err != nil {
		return nil, err
	}

	return delivery.RestoreDelivery(
		id,
		orderID,
		courierID,
		pickup,
		dropoff,
		dto.DistanceKm,
		payout,
		delivery.Status(dto.Status),
		dto.OfferedAt,
		dto.AcceptedAt,
		dto.CollectedAt,
		dto.DeliveredAt,
		dto.CancelledAt,
		dto.Version,
	)
}
