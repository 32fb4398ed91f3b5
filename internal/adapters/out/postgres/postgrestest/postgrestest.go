// Package postgrestest opens throwaway in-memory databases with the production schema
// for repository tests that should not need docker.
package postgrestest

import (
	"fmt"
	"testing"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB returns a migrated SQLite database private to the test. The pool holds
// a single connection so every statement sees the same in-memory file.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, postgres.Migrate(db))
	return db
}

// Tracker records TrackAggregate calls made by repositories.
type Tracker struct {
	Tracked []any
}

func (t *Tracker) TrackAggregate(_ kernel.UUID, aggregate any) {
	t.Tracked = append(t.Tracked, aggregate)
}
