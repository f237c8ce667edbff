package migration

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/parkline/parkline/internal/infrastructure/persistence/models"
	"github.com/parkline/parkline/internal/shared/logger"
)

// ErrDownNotSupported is returned by strategies that cannot revert.
var ErrDownNotSupported = errors.New("down migrations are not supported by this strategy")

func AutoMigrateModels() []any {
	return []any{
		&models.BranchModel{},
		&models.TicketModel{},
		&models.TicketChargeModel{},
		&models.FreeHoursGrantModel{},
		&models.SubscriptionPlanModel{},
		&models.SubscriptionModel{},
		&models.SubscriptionPlateModel{},
		&models.SubscriptionOverageModel{},
		&models.RateBaseModel{},
	}
}

// GormAutoMigrateStrategy derives the schema from the gorm models. It is the
// default for sqlite, where the MySQL scripts do not apply.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy() Strategy {
	return &GormAutoMigrateStrategy{
		logger: logger.NewLogger().With("component", "migration.automigrate"),
	}
}

func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB) error {
	toMigrate := AutoMigrateModels()
	if err := db.AutoMigrate(toMigrate...); err != nil {
		return fmt.Errorf("failed to auto-migrate models: %w", err)
	}
	s.logger.Infow("auto-migration completed", "models_count", len(toMigrate))
	return nil
}

func (s *GormAutoMigrateStrategy) MigrateDown(*gorm.DB, int) error {
	return ErrDownNotSupported
}

func (s *GormAutoMigrateStrategy) GetVersion(*gorm.DB) (int64, error) {
	return 0, nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return StrategyAutoMigrate
}
