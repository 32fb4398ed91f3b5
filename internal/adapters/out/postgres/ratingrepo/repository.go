// Package ratingrepo persists customer ratings with GORM.
package ratingrepo

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/rating"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RatingDTO is the ratings row. order_id is unique: one rating per order.
type RatingDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	CustomerID    uuid.UUID `gorm:"type:uuid;not null;index"`
	FoodScore     int       `gorm:"type:smallint;not null"`
	ServiceScore  int       `gorm:"type:smallint;not null"`
	DeliveryScore int       `gorm:"type:smallint;not null"`
	Comment       string    `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"not null"`
}

func (RatingDTO) TableName() string {
	return "ratings"
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormRatingRepository implements ports.RatingRepository using GORM.
type GormRatingRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormRatingRepository(db *gorm.DB, tracker aggregateTracker) *GormRatingRepository {
	return &GormRatingRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add reports a second rating for the same order as a validation error.
func (r *GormRatingRepository) Add(ctx context.Context, aggregate *rating.Rating) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewValueIsInvalidErrorWithCause("orderId", err)
		}
		return errs.NewRemoteFailureError("add rating", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormRatingRepository) Get(ctx context.Context, id kernel.UUID) (*rating.Rating, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RatingDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("rating", id.String())
		}
		return nil, errs.NewRemoteFailureError("get rating", err)
	}

	return toDomain(dto)
}

func (r *GormRatingRepository) Delete(ctx context.Context, id kernel.UUID) error {
	result := r.db.WithContext(ctx).Delete(&RatingDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return errs.NewRemoteFailureError("delete rating", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("rating", id.String())
	}
	return nil
}

func (r *GormRatingRepository) ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&RatingDTO{}).Where("order_id = ?", orderID.Bytes()).Count(&count).Error; err != nil {
		return false, errs.NewRemoteFailureError("check rating", err)
	}
	return count > 0, nil
}

func (r *GormRatingRepository) ListByOrderIDs(ctx context.Context, orderIDs []kernel.UUID) ([]*rating.Rating, error) {
	if len(orderIDs) == 0 {
		return []*rating.Rating{}, nil
	}

	raw := make([]uuid.UUID, 0, len(orderIDs))
	for _, id := range orderIDs {
		raw = append(raw, id.Bytes())
	}

	var dtos []RatingDTO
	if err := r.db.WithContext(ctx).Where("order_id IN ?", raw).Order("created_at").Find(&dtos).Error; err != nil {
		return nil, errs.NewRemoteFailureError("list ratings", err)
	}

	ratings := make([]*rating.Rating, 0, len(dtos))
	for _, dto := range dtos {
		rt, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		ratings = append(ratings, rt)
	}
	return ratings, nil
}

func fromDomain(r *rating.Rating) RatingDTO {
	return RatingDTO{
		ID:            r.ID().Bytes(),
		OrderID:       r.OrderID().Bytes(),
		CustomerID:    r.CustomerID().Bytes(),
		FoodScore:     r.FoodScore(),
		ServiceScore:  r.ServiceScore(),
		DeliveryScore: r.DeliveryScore(),
		Comment:       r.Comment(),
		CreatedAt:     r.CreatedAt(),
	}
}

func toDomain(dto RatingDTO) (*rating.Rating, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	return rating.NewRating(id, orderID, customerID,
		dto.FoodScore, dto.ServiceScore, dto.DeliveryScore,
		dto.Comment, dto.CreatedAt)
}
