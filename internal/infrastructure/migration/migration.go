package migration

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/parkline/parkline/internal/shared/config"
	"github.com/parkline/parkline/internal/shared/logger"
)

const (
	StrategyGoose         = "goose"
	StrategyGolangMigrate = "golang-migrate"
	StrategyAutoMigrate   = "automigrate"
)

// Manager handles database migrations with different strategies
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks a strategy by name. An empty name means goose for MySQL
// and automigrate for sqlite.
func NewManager(driver, strategyName string) (*Manager, error) {
	name := strings.ToLower(strings.TrimSpace(strategyName))
	if name == "" {
		name = StrategyGoose
		if driver == config.DriverSQLite {
			name = StrategyAutoMigrate
		}
	}

	var strategy Strategy
	switch name {
	case StrategyGoose:
		strategy = NewGooseStrategy()
	case StrategyGolangMigrate:
		strategy = NewGolangMigrateStrategy()
	case StrategyAutoMigrate:
		strategy = NewGormAutoMigrateStrategy()
	default:
		return nil, fmt.Errorf("unknown migration strategy %q", strategyName)
	}
	if driver == config.DriverSQLite && name != StrategyAutoMigrate {
		return nil, fmt.Errorf("migration strategy %q only supports mysql", name)
	}

	return NewManagerWithStrategy(strategy), nil
}

// NewManagerWithStrategy creates a new migration manager with a specific strategy
func NewManagerWithStrategy(strategy Strategy) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   logger.NewLogger().With("component", "migration.manager"),
	}
}

// Migrate executes the configured migration strategy
func (m *Manager) Migrate(db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(db); err != nil {
		m.logger.Errorw("migration failed", "strategy", m.strategy.GetName(), "error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully", "strategy", m.strategy.GetName())
	return nil
}

func (m *Manager) Rollback(db *gorm.DB, steps int) error {
	if steps <= 0 {
		return fmt.Errorf("rollback steps must be positive")
	}
	return m.strategy.MigrateDown(db, steps)
}

func (m *Manager) Version(db *gorm.DB) (int64, error) {
	return m.strategy.GetVersion(db)
}

// GetStrategy returns the current migration strategy
func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}
