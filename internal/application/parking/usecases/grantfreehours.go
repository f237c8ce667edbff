package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/parkline/parkline/internal/domain/ticket"
	"github.com/parkline/parkline/internal/shared/biztime"
	"github.com/parkline/parkline/internal/shared/errors"
	"github.com/parkline/parkline/internal/shared/logger"
)

type GrantFreeHoursCommand struct {
	TicketID   uint
	BusinessID uint
	Hours      decimal.Decimal
}

type GrantFreeHoursResult struct {
	GrantID        uint   `json:"grant_id"`
	TicketID       uint   `json:"ticket_id"`
	GrantedHours   string `json:"granted_hours"`
	TotalFreeHours string `json:"total_free_hours"`
}

// GrantFreeHoursUseCase records a commerce partner's free hours on an open
// ticket. The ticket row lock orders grants against a concurrent exit.
type GrantFreeHoursUseCase struct {
	txMgr         TransactionRunner
	ticketRepo    ticket.TicketRepository
	freeHoursRepo ticket.FreeHoursRepository
	now           func() time.Time
	logger        logger.Interface
}

func NewGrantFreeHoursUseCase(
	txMgr TransactionRunner,
	ticketRepo ticket.TicketRepository,
	freeHoursRepo ticket.FreeHoursRepository,
	logger logger.Interface,
) *GrantFreeHoursUseCase {
	return &GrantFreeHoursUseCase{
		txMgr:         txMgr,
		ticketRepo:    ticketRepo,
		freeHoursRepo: freeHoursRepo,
		now:           biztime.NowUTC,
		logger:        logger,
	}
}

func (uc *GrantFreeHoursUseCase) Execute(ctx context.Context, cmd GrantFreeHoursCommand) (*GrantFreeHoursResult, error) {
	uc.logger.Infow("executing grant free hours use case",
		"ticket_id", cmd.TicketID,
		"business_id", cmd.BusinessID,
		"hours", cmd.Hours.String(),
	)

	if err := uc.validateCommand(cmd); err != nil {
		return nil, err
	}

	var (
		grant *ticket.FreeHoursGrant
		total decimal.Decimal
	)
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		t, err := uc.ticketRepo.GetByIDForUpdate(txCtx, cmd.TicketID)
		if err != nil {
			return err
		}
		if err := t.CheckExitable(); err != nil {
			return err
		}

		grant, err = ticket.NewFreeHoursGrant(t.ID(), cmd.BusinessID, cmd.Hours, uc.now())
		if err != nil {
			return err
		}
		if err := uc.freeHoursRepo.Create(txCtx, grant); err != nil {
			return err
		}

		total, err = uc.freeHoursRepo.SumGrantedHoursByTicketID(txCtx, t.ID())
		return err
	})
	if err != nil {
		switch {
		case stderrors.Is(err, ticket.ErrTicketNotFound):
			return nil, errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", cmd.TicketID))
		case stderrors.Is(err, ticket.ErrNotInProgress), stderrors.Is(err, ticket.ErrExitAlreadyRegistered):
			return nil, errors.NewBusinessRuleError(err.Error())
		case stderrors.Is(err, ticket.ErrInvalidFreeHours):
			return nil, errors.NewValidationError(err.Error())
		}
		uc.logger.Errorw("failed to grant free hours", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to grant free hours")
	}

	uc.logger.Infow("free hours granted",
		"ticket_id", cmd.TicketID,
		"grant_id", grant.ID(),
		"total_free_hours", total.String(),
	)

	return &GrantFreeHoursResult{
		GrantID:        grant.ID(),
		TicketID:       grant.TicketID(),
		GrantedHours:   grant.GrantedHours().StringFixed(2),
		TotalFreeHours: total.StringFixed(2),
	}, nil
}

func (uc *GrantFreeHoursUseCase) validateCommand(cmd GrantFreeHoursCommand) error {
	if cmd.TicketID == 0 {
		return errors.NewValidationError("ticket ID is required")
	}
	if cmd.BusinessID == 0 {
		return errors.NewValidationError("business ID is required")
	}
	if !cmd.Hours.IsPositive() {
		return errors.NewValidationError(ticket.ErrInvalidFreeHours.Error())
	}
	return nil
}
