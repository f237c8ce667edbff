package subscription

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, sub *Subscription) error
	GetByID(ctx context.Context, id uint) (*Subscription, error)
	// GetByIDForUpdate locks the row for the rest of the transaction in ctx.
	GetByIDForUpdate(ctx context.Context, id uint) (*Subscription, error)
	// FindActiveByPlate returns nil, nil when the plate has no active subscription.
	FindActiveByPlate(ctx context.Context, plate string) (*Subscription, error)
	// AddConsumedHours atomically adds delta to consumed_hours if the row is
	// still at expectedVersion, and bumps the version. It returns
	// ErrConcurrentUpdate when no row matched.
	AddConsumedHours(ctx context.Context, id uint, delta decimal.Decimal, expectedVersion int) error
	// ResetCycles zeroes consumed hours of subscriptions whose cycle started
	// before cycleStart and returns the number of rows reset.
	ResetCycles(ctx context.Context, cycleStart time.Time) (int64, error)
}

type PlanRepository interface {
	Create(ctx context.Context, plan *Plan) error
	GetByID(ctx context.Context, id uint) (*Plan, error)
}

type OverageRepository interface {
	Create(ctx context.Context, overage *Overage) error
	GetByTicketID(ctx context.Context, ticketID uint) (*Overage, error)
}
