// Package statuslog stores the append-only audit trail of order status changes.
package statuslog

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StatusChangeDTO struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	FromStatus string    `gorm:"type:varchar(32);not null"`
	ToStatus   string    `gorm:"type:varchar(32);not null"`
	Role       string    `gorm:"type:varchar(16);not null"`
	ActorID    uuid.UUID `gorm:"type:uuid;not null"`
	At         time.Time `gorm:"not null"`
}

func (StatusChangeDTO) TableName() string {
	return "status_changes"
}

// GormStatusChangeLog implements ports.StatusChangeLog using GORM.
type GormStatusChangeLog struct {
	db *gorm.DB
}

func NewGormStatusChangeLog(db *gorm.DB) *GormStatusChangeLog {
	return &GormStatusChangeLog{db: db}
}

func (l *GormStatusChangeLog) Append(ctx context.Context, change order.StatusChange) error {
	dto := StatusChangeDTO{
		OrderID:    change.OrderID.Bytes(),
		FromStatus: change.From.String(),
		ToStatus:   change.To.String(),
		Role:       change.Role.String(),
		ActorID:    change.ActorID.Bytes(),
		At:         change.At.UTC(),
	}
	if err := l.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewRemoteFailureError("append status change", err)
	}
	return nil
}

// ListByOrder returns the changes of one order, oldest first.
func (l *GormStatusChangeLog) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]order.StatusChange, error) {
	var dtos []StatusChangeDTO
	if err := l.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("at, id").
		Find(&dtos).Error; err != nil {
		return nil, errs.NewRemoteFailureError("list status changes", err)
	}

	changes := make([]order.StatusChange, 0, len(dtos))
	for _, dto := range dtos {
		change, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		changes = append(changes, change)
	}
	return changes, nil
}

func toDomain(dto StatusChangeDTO) (order.StatusChange, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return order.StatusChange{}, err
	}
	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return order.StatusChange{}, err
	}
	from, err := order.ParseStatus(dto.FromStatus)
	if err != nil {
		return order.StatusChange{}, err
	}
	to, err := order.ParseStatus(dto.ToStatus)
	if err != nil {
		return order.StatusChange{}, err
	}
	role, err := kernel.ParseRole(dto.Role)
	if err != nil {
		return order.StatusChange{}, err
	}

	return order.StatusChange{
		OrderID: orderID,
		From:    from,
		To:      to,
		Role:    role,
		ActorID: actorID,
		At:      dto.At.UTC(),
	}, nil
}
