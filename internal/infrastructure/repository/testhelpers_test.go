package repository

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/parkline/parkline/internal/infrastructure/migration"
	"github.com/parkline/parkline/internal/infrastructure/persistence/models"
)

var (
	day0 = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	t10  = time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, gdb.AutoMigrate(migration.AutoMigrateModels()...))
	return gdb
}

func seedBranch(t *testing.T, gdb *gorm.DB, name, rate string, active bool) uint {
	t.Helper()
	m := &models.BranchModel{
		Name:        name,
		RatePerHour: decimal.RequireFromString(rate),
		Active:      active,
	}
	require.NoError(t, gdb.Create(m).Error)
	return m.ID
}

func seedRateBase(t *testing.T, gdb *gorm.DB, rate string, start time.Time, end *time.Time, active bool) uint {
	t.Helper()
	m := &models.RateBaseModel{
		AmountPerHour: decimal.RequireFromString(rate),
		StartDate:     start,
		EndDate:       end,
		Active:        active,
	}
	require.NoError(t, gdb.Create(m).Error)
	return m.ID
}
