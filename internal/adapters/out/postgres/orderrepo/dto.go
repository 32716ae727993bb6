// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with proper indexing
// for efficient querying by status and courier assignment. The version column
// drives the optimistic concurrency check on updates.
type OrderDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RestaurantID uuid.UUID  `gorm:"type:uuid;not null;index"`
	CourierID    *uuid.UUID `gorm:"type:uuid;index"`

	Street       string `gorm:"type:varchar(255);not null"`
	Number       string `gorm:"type:varchar(32)"`
	Complement   string `gorm:"type:varchar(255)"`
	Neighborhood string `gorm:"type:varchar(255)"`
	City         string `gorm:"type:varchar(255);not null"`
	PostalCode   string `gorm:"type:varchar(32)"`

	PickupLatitude   float64  `gorm:"type:double precision;not null"`
	PickupLongitude  float64  `gorm:"type:double precision;not null"`
	DropoffLatitude  *float64 `gorm:"type:double precision"`
	DropoffLongitude *float64 `gorm:"type:double precision"`

	PaymentMethod int `gorm:"type:int;not null"`

	Subtotal    decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	DeliveryFee decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	ServiceFee  decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	Discount    decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	Total       decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	Tendered    *decimal.Decimal `gorm:"type:decimal(12,2)"`
	ChangeDue   *decimal.Decimal `gorm:"type:decimal(12,2)"`

	Status int `gorm:"type:int;not null;index"`

	CreatedAt   time.Time  `gorm:"not null"`
	ConfirmedAt *time.Time `gorm:""`
	ReadyAt     *time.Time `gorm:""`
	CompletedAt *time.Time `gorm:""`
	CancelledAt *time.Time `gorm:""`

	Version int64 `gorm:"type:bigint;not null"`

	Items   []ItemDTO    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	History []HistoryDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one order line item. Items are immutable after order
// creation; the position keeps the original ordering stable.
type ItemDTO struct {
	OrderID   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position  int             `gorm:"type:int;primaryKey"`
	Name      string          `gorm:"type:varchar(255);not null"`
	Quantity  int             `gorm:"type:int;not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// TableName specifies the database table name for order line items.
func (ItemDTO) TableName() string {
	return "order_items"
}

// HistoryDTO represents one entry of the append-only order status history.
// The sequence number preserves ordering; rows are never rewritten.
type HistoryDTO struct {
	OrderID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq     int       `gorm:"type:int;primaryKey"`
	Status  int       `gorm:"type:int;not null"`
	At      time.Time `gorm:"not null"`
	Note    string    `gorm:"type:varchar(1024)"`
}

// TableName specifies the database table name for order history entries.
func (HistoryDTO) TableName() string {
	return "order_history"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	var courierID *uuid.UUID
	if id := aggregate.CourierID(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	address := aggregate.Address()
	var dropLat, dropLon *float64
	if loc := address.Location(); loc != nil {
		lat := loc.Latitude()
		lon := loc.Longitude()
		dropLat = &lat
		dropLon = &lon
	}

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for i, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			OrderID:   orderID,
			Position:  i,
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().Amount(),
		})
	}

	history := make([]HistoryDTO, 0, len(aggregate.History()))
	for i, entry := range aggregate.History() {
		history = append(history, HistoryDTO{
			OrderID: orderID,
			Seq:     i,
			Status:  int(entry.Status()),
			At:      entry.At(),
			Note:    entry.Note(),
		})
	}

	return OrderDTO{
		ID:               orderID,
		RestaurantID:     aggregate.RestaurantID().Bytes(),
		CourierID:        courierID,
		Street:           address.Street(),
		Number:           address.Number(),
		Complement:       address.Complement(),
		Neighborhood:     address.Neighborhood(),
		City:             address.City(),
		PostalCode:       address.PostalCode(),
		PickupLatitude:   aggregate.PickupLocation().Latitude(),
		PickupLongitude:  aggregate.PickupLocation().Longitude(),
		DropoffLatitude:  dropLat,
		DropoffLongitude: dropLon,
		PaymentMethod:    int(aggregate.PaymentMethod()),
		Subtotal:         aggregate.Subtotal().Amount(),
		DeliveryFee:      aggregate.DeliveryFee().Amount(),
		ServiceFee:       aggregate.ServiceFee().Amount(),
		Discount:         aggregate.Discount().Amount(),
		Total:            aggregate.Total().Amount(),
		Tendered:         optionalAmount(aggregate.Tendered()),
		ChangeDue:        optionalAmount(aggregate.ChangeDue()),
		Status:           int(aggregate.Status()),
		CreatedAt:        aggregate.CreatedAt(),
		ConfirmedAt:      aggregate.ConfirmedAt(),
		ReadyAt:          aggregate.ReadyAt(),
		CompletedAt:      aggregate.CompletedAt(),
		CancelledAt:      aggregate.CancelledAt(),
		Version:          aggregate.Version(),
		Items:            items,
		History:          history,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including items, history, and timestamps
// using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	pickup, err := kernel.NewGeoPoint(dto.PickupLatitude, dto.PickupLongitude)
	if err != nil {
		return nil, err
	}

	var dropoff *kernel.GeoPoint
	if dto.DropoffLatitude != nil && dto.DropoffLongitude != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.DropoffLatitude, *dto.DropoffLongitude)
		if pointErr != nil {
			return nil, pointErr
		}
		dropoff = &point
	}

	address, err := order.NewAddress(
		dto.Street, dto.Number, dto.Complement, dto.Neighborhood, dto.City, dto.PostalCode,
		dropoff,
	)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		unitPrice, priceErr := kernel.NewMoney(itemDTO.UnitPrice)
		if priceErr != nil {
			return nil, priceErr
		}

		item, itemErr := order.NewItem(itemDTO.Name, itemDTO.Quantity, unitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	history := make([]order.HistoryEntry, 0, len(dto.History))
	for _, entryDTO := range dto.History {
		history = append(history, order.NewHistoryEntry(
			order.Status(entryDTO.Status), entryDTO.At, entryDTO.Note))
	}

	subtotal, err := kernel.NewMoney(dto.Subtotal)
	if err != nil {
		return nil, err
	}
	deliveryFee, err := kernel.NewMoney(dto.DeliveryFee)
	if err != nil {
		return nil, err
	}
	serviceFee, err := kernel.NewMoney(dto.ServiceFee)
	if err != nil {
		return nil, err
	}
	discount, err := kernel.NewMoney(dto.Discount)
	if err != nil {
		return nil, err
	}

	tendered, err := optionalMoney(dto.Tendered)
	if err != nil {
		return nil, err
	}
	changeDue, err := optionalMoney(dto.ChangeDue)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:             id,
		RestaurantID:   restaurantID,
		CourierID:      courierID,
		Items:          items,
		Address:        address,
		PickupLocation: pickup,
		PaymentMethod:  order.PaymentMethod(dto.PaymentMethod),
		Subtotal:       subtotal,
		DeliveryFee:    deliveryFee,
		ServiceFee:     serviceFee,
		Discount:       discount,
		Tendered:       tendered,
		ChangeDue:      changeDue,
		Status:         order.Status(dto.Status),
		History:        history,
		CreatedAt:      dto.CreatedAt,
		ConfirmedAt:    dto.ConfirmedAt,
		ReadyAt:        dto.ReadyAt,
		CompletedAt:    dto.CompletedAt,
		CancelledAt:    dto.CancelledAt,
		Version:        dto.Version,
	})
}

func optionalAmount(m *kernel.Money) *decimal.Decimal {
	if m == nil {
		return nil
	}
	amount := m.Amount()
	return &amount
}

func optionalMoney(d *decimal.Decimal) (*kernel.Money, error) {
	if d == nil {
		return nil, nil
	}

	m, err := kernel.NewMoney(*d)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
