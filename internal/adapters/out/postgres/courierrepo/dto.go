// Package courierrepo persists the Courier aggregate and its delivery history with GORM.
package courierrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO is the couriers row. The location columns are NULL until the
// first device push.
type CourierDTO struct {
	ID                uuid.UUID   `gorm:"type:uuid;primaryKey"`
	UserID            uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex"`
	Status            string      `gorm:"type:varchar(16);not null;index"`
	Location          LocationDTO `gorm:"embedded;embeddedPrefix:location_"`
	LocationUpdatedAt *time.Time
	AverageRating     float64             `gorm:"not null;default:0"`
	RatedDeliveries   int                 `gorm:"not null;default:0"`
	DeliveryRecords   []DeliveryRecordDTO `gorm:"foreignKey:CourierID;constraint:OnDelete:CASCADE"`
}

func (CourierDTO) TableName() string {
	return "couriers"
}

// LocationDTO is the last reported position embedded in the couriers row.
type LocationDTO struct {
	Lat *float64
	Lon *float64
}

// DeliveryRecordDTO is one entry of a courier's delivery history. An order
// is delivered at most once, so order_id is the key.
type DeliveryRecordDTO struct {
	OrderID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CourierID      uuid.UUID `gorm:"type:uuid;not null;index"`
	DeliveredAt    time.Time `gorm:"not null"`
	CustomerRating *int
}

func (DeliveryRecordDTO) TableName() string {
	return "delivery_records"
}

func fromDomain(c *courier.Courier) CourierDTO {
	courierID := c.ID().Bytes()

	records := make([]DeliveryRecordDTO, 0, len(c.History()))
	for _, rec := range c.History() {
		records = append(records, DeliveryRecordDTO{
			OrderID:        rec.OrderID().Bytes(),
			CourierID:      courierID,
			DeliveredAt:    rec.DeliveredAt(),
			CustomerRating: rec.CustomerRating(),
		})
	}

	var location LocationDTO
	if loc := c.Location(); loc != nil {
		lat, lon := loc.Lat(), loc.Lon()
		location = LocationDTO{Lat: &lat, Lon: &lon}
	}

	return CourierDTO{
		ID:                courierID,
		UserID:            c.UserID().Bytes(),
		Status:            c.OperationalStatus().String(),
		Location:          location,
		LocationUpdatedAt: c.LocationUpdatedAt(),
		AverageRating:     c.AverageRating(),
		RatedDeliveries:   c.RatedDeliveries(),
		DeliveryRecords:   records,
	}
}

func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	status, err := courier.ParseOperationalStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var location *kernel.Location
	if dto.Location.Lat != nil && dto.Location.Lon != nil {
		loc, locErr := kernel.NewLocation(*dto.Location.Lat, *dto.Location.Lon)
		if locErr != nil {
			return nil, locErr
		}
		location = &loc
	}

	var locationUpdatedAt *time.Time
	if dto.LocationUpdatedAt != nil {
		at := dto.LocationUpdatedAt.UTC()
		locationUpdatedAt = &at
	}

	history := make([]*courier.DeliveryRecord, 0, len(dto.DeliveryRecords))
	for _, recDTO := range dto.DeliveryRecords {
		rec, recErr := deliveryRecordToDomain(recDTO)
		if recErr != nil {
			return nil, recErr
		}
		history = append(history, rec)
	}

	return courier.RestoreCourier(courier.RestoreParams{
		ID:                id,
		UserID:            userID,
		Status:            status,
		Location:          location,
		LocationUpdatedAt: locationUpdatedAt,
		History:           history,
		AverageRating:     dto.AverageRating,
		RatedDeliveries:   dto.RatedDeliveries,
	})
}

func deliveryRecordToDomain(dto DeliveryRecordDTO) (*courier.DeliveryRecord, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return courier.NewDeliveryRecord(orderID, dto.DeliveredAt.UTC(), dto.CustomerRating)
}
