// Package offerrepo persists promotional offers with GORM.
package offerrepo

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/offer"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OfferDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title    string    `gorm:"type:varchar(255);not null"`
	StartsAt time.Time `gorm:"not null"`
	EndsAt   time.Time `gorm:"not null;index"`
	Active   bool      `gorm:"not null;index"`
}

func (OfferDTO) TableName() string {
	return "offers"
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormOfferRepository implements ports.OfferRepository using GORM.
type GormOfferRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormOfferRepository(db *gorm.DB, tracker aggregateTracker) *GormOfferRepository {
	return &GormOfferRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormOfferRepository) Add(ctx context.Context, aggregate *offer.Offer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewRemoteFailureError("add offer", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOfferRepository) Update(ctx context.Context, aggregate *offer.Offer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OfferDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"title":     dto.Title,
		"starts_at": dto.StartsAt,
		"ends_at":   dto.EndsAt,
		"active":    dto.Active,
	})
	if result.Error != nil {
		return errs.NewRemoteFailureError("update offer", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("offer", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// ListExpiredActive returns active offers whose end date is before now.
func (r *GormOfferRepository) ListExpiredActive(ctx context.Context, now time.Time) ([]*offer.Offer, error) {
	var dtos []OfferDTO
	if err := r.db.WithContext(ctx).
		Where("active = ? AND ends_at < ?", true, now.UTC()).
		Order("ends_at").
		Find(&dtos).Error; err != nil {
		return nil, errs.NewRemoteFailureError("list expired offers", err)
	}

	offers := make([]*offer.Offer, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		offers = append(offers, o)
	}
	return offers, nil
}

func fromDomain(o *offer.Offer) OfferDTO {
	return OfferDTO{
		ID:       o.ID().Bytes(),
		Title:    o.Title(),
		StartsAt: o.StartsAt().UTC(),
		EndsAt:   o.EndsAt().UTC(),
		Active:   o.IsActive(),
	}
}

func toDomain(dto OfferDTO) (*offer.Offer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return offer.NewOffer(id, dto.Title, dto.StartsAt.UTC(), dto.EndsAt.UTC(), dto.Active)
}
