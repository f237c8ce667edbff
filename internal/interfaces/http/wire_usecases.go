package http

import (
	"time"

	"github.com/parkline/parkline/internal/application/parking/dto"
	"github.com/parkline/parkline/internal/application/parking/usecases"
	"github.com/parkline/parkline/internal/infrastructure/cache"
	"github.com/parkline/parkline/internal/shared/db"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	registerEntryUC           *usecases.RegisterEntryUseCase
	processExitUC             *usecases.ProcessExitUseCase
	getTicketUC               *usecases.GetTicketUseCase
	grantFreeHoursUC          *usecases.GrantFreeHoursUseCase
	resetSubscriptionCyclesUC *usecases.ResetSubscriptionCyclesUseCase
}

func newUseCases(c *Container) *allUseCases {
	txMgr := db.NewTransactionManager(c.db)
	formatter := dto.NewAmountFormatter(c.cfg.Billing.Locale, c.cfg.Billing.Currency)
	log := c.log.Named("parking")

	var guard usecases.ExitGuard
	if c.redis != nil {
		ttl := time.Duration(c.cfg.Redis.ExitGuardTTLSeconds) * time.Second
		guard = cache.NewRedisExitGuard(c.redis, ttl, log)
	}

	return &allUseCases{
		registerEntryUC: usecases.NewRegisterEntryUseCase(txMgr, c.repos, c.metrics, log),
		processExitUC: usecases.NewProcessExitUseCase(
			txMgr, c.repos, guard, c.metrics, formatter, c.cfg.Billing.ConflictRetries, log,
		),
		getTicketUC:               usecases.NewGetTicketUseCase(c.repos.Tickets, c.repos.Charges, formatter, log),
		grantFreeHoursUC:          usecases.NewGrantFreeHoursUseCase(txMgr, c.repos.Tickets, c.repos.FreeHours, log),
		resetSubscriptionCyclesUC: usecases.NewResetSubscriptionCyclesUseCase(c.repos.Subscriptions, log),
	}
}
