package usecases

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/parkline/parkline/internal/application/parking/dto"
	"github.com/parkline/parkline/internal/domain/branch"
	"github.com/parkline/parkline/internal/domain/rate"
	"github.com/parkline/parkline/internal/domain/subscription"
	"github.com/parkline/parkline/internal/domain/ticket"
)

type RegisterEntryExecutor interface {
	Execute(ctx context.Context, cmd RegisterEntryCommand) (*dto.TicketView, error)
}

type ProcessExitExecutor interface {
	Execute(ctx context.Context, cmd ProcessExitCommand) (*dto.TicketView, error)
}

type GetTicketExecutor interface {
	Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketView, error)
}

type GrantFreeHoursExecutor interface {
	Execute(ctx context.Context, cmd GrantFreeHoursCommand) (*GrantFreeHoursResult, error)
}

type ResetSubscriptionCyclesExecutor interface {
	Execute(ctx context.Context) (*ResetSubscriptionCyclesResult, error)
}

// TransactionRunner is satisfied by *db.TransactionManager.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ExitGuard short-circuits duplicate in-flight exits for one ticket. It
// returns ticket.ErrExitInProgress when another exit holds the guard.
type ExitGuard interface {
	Acquire(ctx context.Context, ticketID uint) (release func(), err error)
}

type BillingMetrics interface {
	RecordEntry(result string)
	RecordExit(result string, duration time.Duration)
	RecordCharge(amount, overageHours decimal.Decimal)
}

// Repositories groups the stores the parking use cases read and write.
type Repositories struct {
	Tickets       ticket.TicketRepository
	Charges       ticket.ChargeRepository
	FreeHours     ticket.FreeHoursRepository
	Subscriptions subscription.SubscriptionRepository
	Plans         subscription.PlanRepository
	Overages      subscription.OverageRepository
	Rates         rate.RateBaseRepository
	Branches      branch.BranchRepository
}

const (
	ResultCompleted = "completed"
	ResultRejected  = "rejected"
	ResultConflict  = "conflict"
	ResultError     = "error"
)

type noopMetrics struct{}

func (noopMetrics) RecordEntry(string)                            {}
func (noopMetrics) RecordExit(string, time.Duration)              {}
func (noopMetrics) RecordCharge(decimal.Decimal, decimal.Decimal) {}

type noopGuard struct{}

func (noopGuard) Acquire(context.Context, uint) (func(), error) {
	return func() {}, nil
}
