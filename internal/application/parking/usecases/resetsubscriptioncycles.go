package usecases

import (
	"context"
	"time"

	"github.com/parkline/parkline/internal/domain/subscription"
	"github.com/parkline/parkline/internal/shared/biztime"
	"github.com/parkline/parkline/internal/shared/errors"
	"github.com/parkline/parkline/internal/shared/logger"
)

type ResetSubscriptionCyclesResult struct {
	CycleStart time.Time
	Reset      int64
}

// ResetSubscriptionCyclesUseCase starts a new billing month: subscriptions
// whose cycle began before the current business month get their consumed
// hours zeroed.
type ResetSubscriptionCyclesUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	now              func() time.Time
	logger           logger.Interface
}

func NewResetSubscriptionCyclesUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	logger logger.Interface,
) *ResetSubscriptionCyclesUseCase {
	return &ResetSubscriptionCyclesUseCase{
		subscriptionRepo: subscriptionRepo,
		now:              biztime.NowUTC,
		logger:           logger,
	}
}

// SetClock replaces the time source.
func (uc *ResetSubscriptionCyclesUseCase) SetClock(now func() time.Time) {
	uc.now = now
}

func (uc *ResetSubscriptionCyclesUseCase) Execute(ctx context.Context) (*ResetSubscriptionCyclesResult, error) {
	cycleStart := biztime.StartOfMonthUTC(uc.now())

	n, err := uc.subscriptionRepo.ResetCycles(ctx, cycleStart)
	if err != nil {
		uc.logger.Errorw("failed to reset subscription cycles", "cycle_start", cycleStart, "error", err)
		return nil, errors.NewInternalError("failed to reset subscription cycles")
	}

	if n > 0 {
		uc.logger.Infow("subscription cycles reset", "cycle_start", cycleStart, "count", n)
	} else {
		uc.logger.Debugw("no subscription cycles to reset", "cycle_start", cycleStart)
	}

	return &ResetSubscriptionCyclesResult{CycleStart: cycleStart, Reset: n}, nil
}
