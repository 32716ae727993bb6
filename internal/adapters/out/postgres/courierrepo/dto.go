// Package courierrepo provides data transfer objects and mapping functions for courier persistence.
// This package implements the repository pattern for the courier domain aggregate, handling
// the conversion between domain entities and database representations.
package courierrepo

import (
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO represents the database structure for persisting courier aggregates.
// The availability flag doubles as the claim token of the dispatch algorithm:
// the repository flips it with an atomic compare-and-set.
type CourierDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string    `gorm:"type:varchar(255);not null"`
	Vehicle    int       `gorm:"type:int;not null"`
	Approved   bool      `gorm:"not null"`
	Available  bool      `gorm:"not null;index"`
	Latitude   *float64  `gorm:"type:double precision"`
	Longitude  *float64  `gorm:"type:double precision"`
	Rating     float64   `gorm:"type:double precision;not null"`
	Deliveries int       `gorm:"type:int;not null"`
}

// TableName specifies the database table name for courier entities.
// Overrides GORM's default naming convention to use "couriers" instead of "courier_dtos".
func (CourierDTO) TableName() string {
	return "couriers"
}

// fromDomain converts a courier domain aggregate to its database representation.
// An unknown position maps to NULL coordinates.
func fromDomain(aggregate *courier.Courier) CourierDTO {
	var lat, lon *float64
	if loc := aggregate.Location(); loc != nil {
		latitude := loc.Latitude()
		longitude := loc.Longitude()
		lat = &latitude
		lon = &longitude
	}

	return CourierDTO{
		ID:         aggregate.ID().Bytes(),
		Name:       aggregate.Name(),
		Vehicle:    int(aggregate.Vehicle()),
		Approved:   aggregate.IsApproved(),
		Available:  aggregate.IsAvailable(),
		Latitude:   lat,
		Longitude:  lon,
		Rating:     aggregate.Rating(),
		Deliveries: aggregate.Deliveries(),
	}
}

// toDomain converts a database DTO to a courier domain aggregate.
// Reconstructs the complete aggregate using RestoreCourier.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if pointErr != nil {
			return nil, pointErr
		}
		location = &point
	}

	return courier.RestoreCourier(
		id,
		dto.Name,
		courier.Vehicle(dto.Vehicle),
		dto.Approved,
		dto.Available,
		location,
		dto.Rating,
		dto.Deliveries,
	)
}
