package orderrepo

import (
	"context"
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order together with its lines.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewRemoteFailureError("add order", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the mutable columns only. Lines are immutable and skipped.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"status":                dto.Status,
		"courier_id":            dto.CourierID,
		"estimated_delivery_at": dto.EstimatedDeliveryAt,
		"updated_at":            dto.UpdatedAt,
	})
	if result.Error != nil {
		return errs.NewRemoteFailureError("update order", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundErrorWithCause("order", aggregate.ID().String(), gorm.ErrRecordNotFound)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.withLines(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, errs.NewRemoteFailureError("get order", err)
	}

	return toDomain(dto)
}

// ListForScope pushes the role and filter predicates down to SQL and
// re-checks every row with Scope.Matches, newest first.
func (r *GormOrderRepository) ListForScope(ctx context.Context, scope order.Scope) ([]*order.Order, error) {
	query := r.withLines(ctx).Model(&OrderDTO{})

	switch scope.Role() {
	case kernel.RoleCustomer:
		query = query.Where("customer_id = ?", scope.CustomerID().Bytes())
	case kernel.RoleKitchen:
		query = query.Where("status IN ?", statusNames(order.KitchenStatuses()))
	case kernel.RoleCourier:
		query = query.Where(
			"courier_id = ? OR (courier_id IS NULL AND status IN ?)",
			scope.CourierID().Bytes(), statusNames(order.ClaimableStatuses()),
		)
	case kernel.RoleSalesAdmin:
	default:
		return []*order.Order{}, nil
	}

	f := scope.Filter()
	if len(f.Statuses) > 0 {
		query = query.Where("status IN ?", statusNames(f.Statuses))
	}
	if f.CreatedFrom != nil {
		query = query.Where("created_at >= ?", f.CreatedFrom.UTC())
	}
	if f.CreatedTo != nil {
		query = query.Where("created_at <= ?", f.CreatedTo.UTC())
	}
	if f.CustomerID != nil {
		query = query.Where("customer_id = ?", f.CustomerID.Bytes())
	}
	if f.CourierID != nil {
		query = query.Where("courier_id = ?", f.CourierID.Bytes())
	}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		query = query.Where(
			"LOWER(CAST(id AS TEXT)) LIKE ? OR LOWER(delivery_address) LIKE ? OR LOWER(observations) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var dtos []OrderDTO
	if err := query.Order("created_at DESC").Find(&dtos).Error; err != nil {
		return nil, errs.NewRemoteFailureError("list orders", err)
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		if scope.Matches(o) {
			orders = append(orders, o)
		}
	}

	return orders, nil
}

func (r *GormOrderRepository) CountOutForDelivery(ctx context.Context, courierID kernel.UUID, exclude kernel.UUID) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("courier_id = ? AND status = ? AND id <> ?", courierID.Bytes(), order.OutForDelivery.String(), exclude.Bytes()).
		Count(&count).Error
	if err != nil {
		return 0, errs.NewRemoteFailureError("count deliveries", err)
	}
	return int(count), nil
}

func (r *GormOrderRepository) withLines(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Lines", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	})
}

func statusNames(statuses []order.Status) []string {
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, s.String())
	}
	return names
}
