// Package orderrepo persists the Order aggregate and its lines with GORM.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. Lines are stored in order_lines and written
// once, when the order is added.
type OrderDTO struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status              string          `gorm:"type:varchar(32);not null;index"`
	DeliveryAddress     string          `gorm:"type:text;not null"`
	PaymentMethod       string          `gorm:"type:varchar(64);not null"`
	Observations        string          `gorm:"type:text"`
	Subtotal            decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Discount            decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	ShippingCost        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Total               decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CourierID           *uuid.UUID      `gorm:"type:uuid;index"`
	EstimatedDeliveryAt *time.Time
	CreatedAt           time.Time      `gorm:"not null;index"`
	UpdatedAt           time.Time      `gorm:"not null"`
	Lines               []OrderLineDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderLineDTO is a snapshot of one catalog entry at checkout time.
type OrderLineDTO struct {
	OrderID     uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position    int             `gorm:"primaryKey"`
	ItemKind    string          `gorm:"type:varchar(16);not null"`
	ReferenceID uuid.UUID       `gorm:"type:uuid;not null"`
	Name        string          `gorm:"type:varchar(255);not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (OrderLineDTO) TableName() string {
	return "order_lines"
}

func fromDomain(o *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := o.CourierID(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	orderID := o.ID().Bytes()
	lines := make([]OrderLineDTO, 0, len(o.Lines()))
	for i, l := range o.Lines() {
		lines = append(lines, OrderLineDTO{
			OrderID:     orderID,
			Position:    i,
			ItemKind:    l.ProductRef().Kind.String(),
			ReferenceID: l.ProductRef().ReferenceID.Bytes(),
			Name:        l.Name(),
			Quantity:    l.Quantity(),
			UnitPrice:   l.UnitPrice(),
		})
	}

	return OrderDTO{
		ID:                  orderID,
		CustomerID:          o.CustomerID().Bytes(),
		Status:              o.Status().String(),
		DeliveryAddress:     o.DeliveryAddress(),
		PaymentMethod:       o.PaymentMethod(),
		Observations:        o.Observations(),
		Subtotal:            o.Subtotal(),
		Discount:            o.Discount(),
		ShippingCost:        o.ShippingCost(),
		Total:               o.Total(),
		CourierID:           courierID,
		EstimatedDeliveryAt: o.EstimatedDeliveryAt(),
		CreatedAt:           o.CreatedAt(),
		UpdatedAt:           o.UpdatedAt(),
		Lines:               lines,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
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

	lines := make([]order.Line, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		line, lineErr := lineToDomain(lineDTO)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	var eta *time.Time
	if dto.EstimatedDeliveryAt != nil {
		t := dto.EstimatedDeliveryAt.UTC()
		eta = &t
	}

	return order.RestoreOrder(order.RestoreParams{
		ID:                  id,
		CustomerID:          customerID,
		Lines:               lines,
		Status:              status,
		DeliveryAddress:     dto.DeliveryAddress,
		PaymentMethod:       dto.PaymentMethod,
		Observations:        dto.Observations,
		Subtotal:            dto.Subtotal,
		Discount:            dto.Discount,
		ShippingCost:        dto.ShippingCost,
		Total:               dto.Total,
		CourierID:           courierID,
		EstimatedDeliveryAt: eta,
		CreatedAt:           dto.CreatedAt.UTC(),
		UpdatedAt:           dto.UpdatedAt.UTC(),
	})
}

func lineToDomain(dto OrderLineDTO) (order.Line, error) {
	kind, err := kernel.ParseItemKind(dto.ItemKind)
	if err != nil {
		return order.Line{}, err
	}

	refID, err := kernel.UUIDFromBytes(dto.ReferenceID[:])
	if err != nil {
		return order.Line{}, err
	}

	ref, err := kernel.NewItemRef(kind, refID)
	if err != nil {
		return order.Line{}, err
	}

	return order.NewLine(ref, dto.Name, dto.Quantity, dto.UnitPrice)
}
