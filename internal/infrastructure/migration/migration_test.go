package migration

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/parkline/parkline/internal/shared/config"
	"github.com/parkline/parkline/internal/shared/constants"
)

func TestNewManager_StrategySelection(t *testing.T) {
	tests := []struct {
		driver   string
		name     string
		want     string
		wantFail bool
	}{
		{config.DriverMySQL, "", StrategyGoose, false},
		{config.DriverSQLite, "", StrategyAutoMigrate, false},
		{config.DriverMySQL, "golang-migrate", StrategyGolangMigrate, false},
		{config.DriverMySQL, "AutoMigrate", StrategyAutoMigrate, false},
		{config.DriverSQLite, "goose", "", true},
		{config.DriverMySQL, "flyway", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.driver+"/"+tt.name, func(t *testing.T) {
			m, err := NewManager(tt.driver, tt.name)
			if tt.wantFail {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.GetStrategy().GetName())
		})
	}
}

func TestGormAutoMigrateStrategy(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	m := NewManagerWithStrategy(NewGormAutoMigrateStrategy())
	require.NoError(t, m.Migrate(db))

	for _, table := range []string{
		constants.TableBranches,
		constants.TableTickets,
		constants.TableTicketCharges,
		constants.TableFreeHoursGrants,
		constants.TableSubscriptions,
		constants.TableSubscriptionPlates,
		constants.TableSubscriptionPlans,
		constants.TableSubscriptionOverage,
		constants.TableRateBases,
	} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	assert.ErrorIs(t, m.Rollback(db, 1), ErrDownNotSupported)
	assert.Error(t, m.Rollback(db, 0))
}

// The goose and golang-migrate script sets describe the same schema.
func TestEmbeddedScriptsAgree(t *testing.T) {
	gooseFiles, err := fs.Glob(scriptsFS, gooseScriptsDir+"/*.sql")
	require.NoError(t, err)
	upFiles, err := fs.Glob(scriptsFS, migrateScriptsDir+"/*.up.sql")
	require.NoError(t, err)
	downFiles, err := fs.Glob(scriptsFS, migrateScriptsDir+"/*.down.sql")
	require.NoError(t, err)

	require.NotEmpty(t, gooseFiles)
	require.Len(t, upFiles, len(gooseFiles))
	require.Len(t, downFiles, len(gooseFiles))

	for i, name := range gooseFiles {
		raw, err := fs.ReadFile(scriptsFS, name)
		require.NoError(t, err)
		parts := strings.SplitN(string(raw), "-- +goose Down", 2)
		require.Len(t, parts, 2, name)

		up, err := fs.ReadFile(scriptsFS, upFiles[i])
		require.NoError(t, err)
		down, err := fs.ReadFile(scriptsFS, downFiles[i])
		require.NoError(t, err)

		gooseUp := strings.TrimSpace(strings.TrimPrefix(parts[0], "-- +goose Up"))
		assert.Equal(t, gooseUp, strings.TrimSpace(string(up)), name)
		assert.Equal(t, strings.TrimSpace(parts[1]), strings.TrimSpace(string(down)), name)
	}
}
