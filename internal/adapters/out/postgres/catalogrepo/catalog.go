// Package catalogrepo is the read-only Catalog over the products and combos tables.
package catalogrepo

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductDTO is a sellable single item.
type ProductDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name      string          `gorm:"type:varchar(255);not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Available bool            `gorm:"not null"`
}

func (ProductDTO) TableName() string {
	return "products"
}

// ComboDTO is a bundle sold at its own price.
type ComboDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name      string          `gorm:"type:varchar(255);not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Available bool            `gorm:"not null"`
}

func (ComboDTO) TableName() string {
	return "combos"
}

type catalogRow struct {
	Name      string
	UnitPrice decimal.Decimal
}

// GormCatalog implements ports.Catalog. Unavailable entries are reported as not found.
type GormCatalog struct {
	db *gorm.DB
}

func NewGormCatalog(db *gorm.DB) *GormCatalog {
	return &GormCatalog{db: db}
}

func (c *GormCatalog) Lookup(ctx context.Context, ref kernel.ItemRef) (ports.CatalogEntry, error) {
	if err := ref.Validate(); err != nil {
		return ports.CatalogEntry{}, err
	}

	var table string
	switch ref.Kind {
	case kernel.ItemKindProduct:
		table = ProductDTO{}.TableName()
	case kernel.ItemKindCombo:
		table = ComboDTO{}.TableName()
	default:
		return ports.CatalogEntry{}, errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("unsupported item kind %s", ref.Kind))
	}

	var row catalogRow
	err := c.db.WithContext(ctx).
		Table(table).
		Select("name, unit_price").
		Where("id = ? AND available = ?", ref.ReferenceID.Bytes(), true).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.CatalogEntry{}, errs.NewObjectNotFoundError(ref.Kind.String(), ref.ReferenceID.String())
		}
		return ports.CatalogEntry{}, errs.NewRemoteFailureError("catalog lookup", err)
	}

	return ports.CatalogEntry{Name: row.Name, UnitPrice: row.UnitPrice}, nil
}
