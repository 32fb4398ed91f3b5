package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"fulfillment/internal/adapters/out/postgres/catalogrepo"
	"fulfillment/internal/adapters/out/postgres/courierrepo"
	"fulfillment/internal/adapters/out/postgres/offerrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/ratingrepo"
	"fulfillment/internal/adapters/out/postgres/statuslog"

	"github.com/lib/pq"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DSN builds a libpq keyword/value connection string.
func DSN(host, port, user, password, dbName, sslMode string) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbName, sslMode)
}

// EnsureDatabase connects to maintenanceDSN (usually the "postgres" database)
// and creates dbName when it does not exist yet.
func EnsureDatabase(ctx context.Context, maintenanceDSN, dbName string) error {
	sqlDB, err := sql.Open("postgres", maintenanceDSN)
	if err != nil {
		return fmt.Errorf("open maintenance connection: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping maintenance connection: %w", err)
	}

	var exists bool
	if err := sqlDB.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", dbName,
	).Scan(&exists); err != nil {
		return fmt.Errorf("check database %s: %w", dbName, err)
	}
	if exists {
		return nil
	}

	if _, err := sqlDB.ExecContext(ctx, "CREATE DATABASE "+pq.QuoteIdentifier(dbName)); err != nil {
		return fmt.Errorf("create database %s: %w", dbName, err)
	}
	return nil
}

// Open connects GORM to PostgreSQL. Duplicate-key violations surface as gorm.ErrDuplicatedKey.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
}

// Models lists every table the module owns, parents first.
func Models() []any {
	return []any{
		&catalogrepo.ProductDTO{},
		&catalogrepo.ComboDTO{},
		&courierrepo.CourierDTO{},
		&courierrepo.DeliveryRecordDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLineDTO{},
		&ratingrepo.RatingDTO{},
		&offerrepo.OfferDTO{},
		&statuslog.StatusChangeDTO{},
	}
}

func Migrate(db *gorm.DB) error {
	for _, model := range Models() {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("migrate %T: %w", model, err)
		}
	}
	return nil
}
