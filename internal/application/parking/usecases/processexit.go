package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/parkline/parkline/internal/application/parking/dto"
	"github.com/parkline/parkline/internal/domain/billing"
	"github.com/parkline/parkline/internal/domain/branch"
	"github.com/parkline/parkline/internal/domain/subscription"
	"github.com/parkline/parkline/internal/domain/ticket"
	"github.com/parkline/parkline/internal/shared/biztime"
	"github.com/parkline/parkline/internal/shared/errors"
	"github.com/parkline/parkline/internal/shared/logger"
)

type ProcessExitCommand struct {
	TicketID uint
}

type ProcessExitUseCase struct {
	txMgr           TransactionRunner
	repos           Repositories
	guard           ExitGuard
	metrics         BillingMetrics
	formatter       *dto.AmountFormatter
	conflictRetries int
	now             func() time.Time
	logger          logger.Interface
}

// NewProcessExitUseCase wires the exit pipeline. guard and metrics may be
// nil. conflictRetries is how many times a lost subscription version race is
// replayed.
func NewProcessExitUseCase(
	txMgr TransactionRunner,
	repos Repositories,
	guard ExitGuard,
	metrics BillingMetrics,
	formatter *dto.AmountFormatter,
	conflictRetries int,
	logger logger.Interface,
) *ProcessExitUseCase {
	if guard == nil {
		guard = noopGuard{}
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if conflictRetries < 0 {
		conflictRetries = 0
	}
	return &ProcessExitUseCase{
		txMgr:           txMgr,
		repos:           repos,
		guard:           guard,
		metrics:         metrics,
		formatter:       formatter,
		conflictRetries: conflictRetries,
		now:             biztime.NowUTC,
		logger:          logger,
	}
}

// SetClock replaces the exit-time source.
func (uc *ProcessExitUseCase) SetClock(now func() time.Time) {
	uc.now = now
}

func (uc *ProcessExitUseCase) Execute(ctx context.Context, cmd ProcessExitCommand) (*dto.TicketView, error) {
	uc.logger.Infow("executing process exit use case", "ticket_id", cmd.TicketID)
	started := time.Now()

	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	release, err := uc.guard.Acquire(ctx, cmd.TicketID)
	switch {
	case stderrors.Is(err, ticket.ErrExitInProgress):
		uc.logger.Warnw("exit already in flight", "ticket_id", cmd.TicketID)
		uc.metrics.RecordExit(ResultRejected, time.Since(started))
		return nil, errors.NewBusinessRuleError(ticket.ErrExitInProgress.Error())
	case err != nil:
		// the database still serializes exits; the guard is only a shortcut
		uc.logger.Warnw("exit guard unavailable, continuing", "ticket_id", cmd.TicketID, "error", err)
		release = func() {}
	}
	defer release()

	var (
		t      *ticket.Ticket
		charge *ticket.Charge
	)
	for attempt := 0; ; attempt++ {
		t, charge, err = uc.exitOnce(ctx, cmd.TicketID)
		if err == nil || !stderrors.Is(err, subscription.ErrConcurrentUpdate) || attempt >= uc.conflictRetries {
			break
		}
		uc.logger.Warnw("subscription changed during exit, retrying",
			"ticket_id", cmd.TicketID,
			"attempt", attempt+1,
		)
	}

	if err != nil {
		appErr := mapExitError(cmd.TicketID, err)
		uc.metrics.RecordExit(exitResult(appErr), time.Since(started))
		if appErr.Type == errors.ErrorTypeInternal || appErr.Type == errors.ErrorTypeConflict {
			uc.logger.Errorw("failed to process exit", "ticket_id", cmd.TicketID, "error", err)
		} else {
			uc.logger.Warnw("exit rejected", "ticket_id", cmd.TicketID, "reason", appErr.Message)
		}
		return nil, appErr
	}

	b := charge.Breakdown()
	uc.metrics.RecordExit(ResultCompleted, time.Since(started))
	uc.metrics.RecordCharge(b.TotalAmount, b.SubscriptionOverageHours)

	uc.logger.Infow("ticket exit processed",
		"ticket_id", t.ID(),
		"total_hours", b.TotalHours.String(),
		"billable_hours", b.BillableHours.String(),
		"rate_source", b.RateSource,
		"total_amount", b.TotalAmount.StringFixed(2),
	)

	return dto.ToTicketView(t, charge, uc.formatter), nil
}

// exitOnce runs one read, compute, write pass in a single transaction.
func (uc *ProcessExitUseCase) exitOnce(ctx context.Context, ticketID uint) (*ticket.Ticket, *ticket.Charge, error) {
	var (
		t      *ticket.Ticket
		charge *ticket.Charge
	)

	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		t, err = uc.repos.Tickets.GetByIDForUpdate(txCtx, ticketID)
		if err != nil {
			return err
		}
		if err := t.CheckExitable(); err != nil {
			return err
		}

		exitAt := uc.now().UTC()

		in, sub, err := uc.loadChargeInput(txCtx, t, exitAt)
		if err != nil {
			return err
		}

		breakdown, err := billing.Calculate(in)
		if err != nil {
			return err
		}

		if err := t.RegisterExit(exitAt); err != nil {
			return err
		}

		charge, err = ticket.NewCharge(t.ID(), breakdown, exitAt)
		if err != nil {
			return err
		}
		if err := uc.repos.Charges.Create(txCtx, charge); err != nil {
			if errors.IsDuplicateError(err) {
				return ticket.ErrExitAlreadyRegistered
			}
			return err
		}

		if sub != nil {
			if err := uc.commitConsumption(txCtx, t, sub, breakdown, exitAt); err != nil {
				return err
			}
		}

		return uc.repos.Tickets.Complete(txCtx, t)
	})
	if err != nil {
		return nil, nil, err
	}
	return t, charge, nil
}

// loadChargeInput gathers every value the calculator needs. The returned
// subscription is nil unless quota applies to this ticket.
func (uc *ProcessExitUseCase) loadChargeInput(ctx context.Context, t *ticket.Ticket, exitAt time.Time) (billing.ChargeInput, *subscription.Subscription, error) {
	in := billing.ChargeInput{
		EntryTime: t.EntryTime(),
		ExitTime:  exitAt,
	}

	br, err := uc.repos.Branches.GetByID(ctx, t.BranchID())
	if err != nil {
		return in, nil, err
	}

	rb, err := uc.repos.Rates.FindCurrentActive(ctx, exitAt)
	if err != nil {
		return in, nil, fmt.Errorf("failed to load effective rate base: %w", err)
	}

	in.FreeHours, err = uc.repos.FreeHours.SumGrantedHoursByTicketID(ctx, t.ID())
	if err != nil {
		return in, nil, fmt.Errorf("failed to sum free hours: %w", err)
	}

	var sub *subscription.Subscription
	if t.SubscriptionID() != nil {
		sub, err = uc.repos.Subscriptions.GetByIDForUpdate(ctx, *t.SubscriptionID())
		if err != nil {
			return in, nil, err
		}
		if !sub.IsActive() {
			uc.logger.Infow("subscription not active, billing as visitor",
				"ticket_id", t.ID(),
				"subscription_id", sub.ID(),
				"status", sub.Status(),
			)
			sub = nil
		}
	}

	if sub != nil {
		plan, err := uc.repos.Plans.GetByID(ctx, sub.PlanID())
		if err != nil {
			return in, nil, err
		}
		in.Quota = &billing.Quota{
			MonthlyHours:  plan.MonthlyHours(),
			ConsumedHours: sub.ConsumedHours(),
		}
	}

	in.Rate, err = billing.ResolveRate(sub, rb, br)
	if err != nil {
		return in, nil, err
	}

	return in, sub, nil
}

func (uc *ProcessExitUseCase) commitConsumption(
	ctx context.Context,
	t *ticket.Ticket,
	sub *subscription.Subscription,
	b billing.ChargeBreakdown,
	at time.Time,
) error {
	if b.HasOverage() {
		overage, err := subscription.NewOverage(sub.ID(), t.ID(),
			b.SubscriptionOverageHours, b.RateApplied, b.SubscriptionOverageCharge, at)
		if err != nil {
			return err
		}
		if err := uc.repos.Overages.Create(ctx, overage); err != nil {
			return fmt.Errorf("failed to save subscription overage: %w", err)
		}
	}

	if !b.SubscriptionHoursConsumed.IsPositive() {
		return nil
	}
	if err := uc.repos.Subscriptions.AddConsumedHours(ctx, sub.ID(), b.SubscriptionHoursConsumed, sub.Version()); err != nil {
		return err
	}
	return sub.RecordConsumption(b.SubscriptionHoursConsumed)
}

func mapExitError(ticketID uint, err error) *errors.AppError {
	if appErr := errors.GetAppError(err); appErr != nil {
		return appErr
	}

	switch {
	case stderrors.Is(err, ticket.ErrTicketNotFound):
		return errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", ticketID)).WithCause(err)
	case stderrors.Is(err, ticket.ErrNotInProgress), stderrors.Is(err, ticket.ErrConcurrentCompletion):
		return errors.NewBusinessRuleError(ticket.ErrNotInProgress.Error()).WithCause(err)
	case stderrors.Is(err, ticket.ErrExitAlreadyRegistered):
		return errors.NewBusinessRuleError(ticket.ErrExitAlreadyRegistered.Error()).WithCause(err)
	case stderrors.Is(err, ticket.ErrExitBeforeEntry), stderrors.Is(err, billing.ErrInvalidTimeRange):
		return errors.NewBusinessRuleError(ticket.ErrExitBeforeEntry.Error()).WithCause(err)
	case stderrors.Is(err, billing.ErrRateNotConfigured):
		return errors.NewBusinessRuleError(billing.ErrRateNotConfigured.Error()).WithCause(err)
	case stderrors.Is(err, branch.ErrBranchNotFound):
		return errors.NewNotFoundError(branch.ErrBranchNotFound.Error()).WithCause(err)
	case stderrors.Is(err, subscription.ErrSubscriptionNotFound):
		return errors.NewNotFoundError(subscription.ErrSubscriptionNotFound.Error()).WithCause(err)
	case stderrors.Is(err, subscription.ErrPlanNotFound):
		return errors.NewNotFoundError(subscription.ErrPlanNotFound.Error()).WithCause(err)
	case stderrors.Is(err, subscription.ErrConcurrentUpdate):
		return errors.NewConflictError("subscription was updated concurrently, retry the exit").WithCause(err)
	default:
		return errors.NewInternalError("failed to process exit").WithCause(err)
	}
}

func exitResult(appErr *errors.AppError) string {
	switch appErr.Type {
	case errors.ErrorTypeConflict:
		return ResultConflict
	case errors.ErrorTypeInternal:
		return ResultError
	default:
		return ResultRejected
	}
}
