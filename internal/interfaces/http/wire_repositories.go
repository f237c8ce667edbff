package http

import (
	"gorm.io/gorm"

	"github.com/parkline/parkline/internal/application/parking/usecases"
	"github.com/parkline/parkline/internal/infrastructure/repository"
	"github.com/parkline/parkline/internal/shared/logger"
)

// newRepositories creates all repository instances from the database connection.
func newRepositories(db *gorm.DB, log logger.Interface) usecases.Repositories {
	return usecases.Repositories{
		Tickets:       repository.NewTicketRepository(db, log),
		Charges:       repository.NewChargeRepository(db),
		FreeHours:     repository.NewFreeHoursRepository(db),
		Subscriptions: repository.NewSubscriptionRepository(db, log),
		Plans:         repository.NewPlanRepository(db),
		Overages:      repository.NewOverageRepository(db),
		Rates:         repository.NewRateBaseRepository(db),
		Branches:      repository.NewBranchRepository(db),
	}
}
