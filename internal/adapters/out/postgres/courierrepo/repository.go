package courierrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCourierRepository implements ports.CourierRepository using GORM.
type GormCourierRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormCourierRepository(db *gorm.DB, tracker aggregateTracker) *GormCourierRepository {
	return &GormCourierRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormCourierRepository) Add(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewRemoteFailureError("add courier", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves the courier row and upserts its delivery records. Records are
// never removed.
func (r *GormCourierRepository) Update(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	// FullSaveAssociations upserts the delivery records along with the courier
	result := r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(&dto)
	if result.Error != nil {
		return errs.NewRemoteFailureError("update courier", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundErrorWithCause("courier", aggregate.ID().String(), gorm.ErrRecordNotFound)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return firstCourier("courier", id.String(), r.withHistory(ctx).Where("id = ?", id.Bytes()))
}

func (r *GormCourierRepository) GetByUserID(ctx context.Context, userID kernel.UUID) (*courier.Courier, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}
	return firstCourier("userId", userID.String(), r.withHistory(ctx).Where("user_id = ?", userID.Bytes()))
}

func (r *GormCourierRepository) GetByDeliveredOrder(ctx context.Context, orderID kernel.UUID) (*courier.Courier, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	query := r.withHistory(ctx).
		Where("id IN (?)", r.db.WithContext(ctx).Model(&DeliveryRecordDTO{}).
			Select("courier_id").
			Where("order_id = ?", orderID.Bytes()))
	return firstCourier("orderId", orderID.String(), query)
}

// GetMany skips ids that do not exist.
func (r *GormCourierRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*courier.Courier, error) {
	if len(ids) == 0 {
		return []*courier.Courier{}, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	var dtos []CourierDTO
	if err := r.withHistory(ctx).Where("id IN ?", raw).Find(&dtos).Error; err != nil {
		return nil, errs.NewRemoteFailureError("get couriers", err)
	}

	couriers := make([]*courier.Courier, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		couriers = append(couriers, c)
	}

	return couriers, nil
}

func firstCourier(param, id string, query *gorm.DB) (*courier.Courier, error) {
	var dto CourierDTO
	if err := query.First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(param, id)
		}
		return nil, errs.NewRemoteFailureError("get courier", err)
	}

	return toDomain(dto)
}

func (r *GormCourierRepository) withHistory(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("DeliveryRecords", func(db *gorm.DB) *gorm.DB {
		return db.Order("delivered_at")
	})
}
