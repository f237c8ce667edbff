package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/parkline/parkline/internal/application/parking/dto"
	"github.com/parkline/parkline/internal/domain/ticket"
	"github.com/parkline/parkline/internal/shared/errors"
	"github.com/parkline/parkline/internal/shared/logger"
)

type GetTicketQuery struct {
	TicketID uint
}

type GetTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	chargeRepo ticket.ChargeRepository
	formatter  *dto.AmountFormatter
	logger     logger.Interface
}

func NewGetTicketUseCase(
	ticketRepo ticket.TicketRepository,
	chargeRepo ticket.ChargeRepository,
	formatter *dto.AmountFormatter,
	logger logger.Interface,
) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo: ticketRepo,
		chargeRepo: chargeRepo,
		formatter:  formatter,
		logger:     logger,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketView, error) {
	if query.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	t, err := uc.ticketRepo.GetByID(ctx, query.TicketID)
	if err != nil {
		if stderrors.Is(err, ticket.ErrTicketNotFound) {
			return nil, errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", query.TicketID))
		}
		uc.logger.Errorw("failed to get ticket", "ticket_id", query.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to get ticket")
	}

	if t.Status().IsInProgress() {
		return dto.ToTicketView(t, nil, uc.formatter), nil
	}

	charge, err := uc.chargeRepo.GetByTicketID(ctx, t.ID())
	if err != nil {
		if !stderrors.Is(err, ticket.ErrChargeNotFound) {
			uc.logger.Errorw("failed to get ticket charge", "ticket_id", t.ID(), "error", err)
			return nil, errors.NewInternalError("failed to get ticket")
		}
		uc.logger.Warnw("completed ticket has no charge", "ticket_id", t.ID())
		charge = nil
	}

	return dto.ToTicketView(t, charge, uc.formatter), nil
}
