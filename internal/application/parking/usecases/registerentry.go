package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/parkline/parkline/internal/application/parking/dto"
	"github.com/parkline/parkline/internal/domain/branch"
	"github.com/parkline/parkline/internal/domain/shared"
	"github.com/parkline/parkline/internal/domain/ticket"
	vo "github.com/parkline/parkline/internal/domain/ticket/valueobjects"
	"github.com/parkline/parkline/internal/shared/biztime"
	"github.com/parkline/parkline/internal/shared/errors"
	"github.com/parkline/parkline/internal/shared/id"
	"github.com/parkline/parkline/internal/shared/logger"
)

type RegisterEntryCommand struct {
	BranchID     uint
	LicensePlate string
	VehicleType  string
}

type RegisterEntryUseCase struct {
	txMgr   TransactionRunner
	repos   Repositories
	metrics BillingMetrics
	newCode func() (string, error)
	now     func() time.Time
	logger  logger.Interface
}

func NewRegisterEntryUseCase(
	txMgr TransactionRunner,
	repos Repositories,
	metrics BillingMetrics,
	logger logger.Interface,
) *RegisterEntryUseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &RegisterEntryUseCase{
		txMgr:   txMgr,
		repos:   repos,
		metrics: metrics,
		newCode: id.NewTicketCode,
		now:     biztime.NowUTC,
		logger:  logger,
	}
}

// SetClock replaces the entry-time source.
func (uc *RegisterEntryUseCase) SetClock(now func() time.Time) {
	uc.now = now
}

func (uc *RegisterEntryUseCase) Execute(ctx context.Context, cmd RegisterEntryCommand) (*dto.TicketView, error) {
	plate := shared.NormalizePlate(cmd.LicensePlate)
	uc.logger.Infow("executing register entry use case", "branch_id", cmd.BranchID, "license_plate", plate)

	vehicleType, err := uc.validateCommand(cmd)
	if err != nil {
		uc.metrics.RecordEntry(ResultRejected)
		return nil, err
	}

	br, err := uc.repos.Branches.GetByID(ctx, cmd.BranchID)
	if err != nil {
		uc.metrics.RecordEntry(ResultRejected)
		if stderrors.Is(err, branch.ErrBranchNotFound) {
			return nil, errors.NewNotFoundError(fmt.Sprintf("branch %d not found", cmd.BranchID))
		}
		uc.logger.Errorw("failed to get branch", "branch_id", cmd.BranchID, "error", err)
		return nil, errors.NewInternalError("failed to register entry")
	}
	if !br.IsActive() {
		uc.metrics.RecordEntry(ResultRejected)
		return nil, errors.NewBusinessRuleError(branch.ErrBranchInactive.Error())
	}

	code, err := uc.newCode()
	if err != nil {
		uc.logger.Errorw("failed to generate ticket code", "error", err)
		return nil, errors.NewInternalError("failed to register entry")
	}

	var created *ticket.Ticket
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		open, err := uc.repos.Tickets.FindOpenByPlate(txCtx, plate)
		if err != nil {
			return err
		}
		if open != nil {
			return ticket.ErrOpenTicketExists
		}

		var subscriptionID *uint
		sub, err := uc.repos.Subscriptions.FindActiveByPlate(txCtx, plate)
		if err != nil {
			return err
		}
		if sub != nil {
			sid := sub.ID()
			subscriptionID = &sid
		}

		created, err = ticket.NewTicket(code, br.ID(), plate, vehicleType, uc.now(), subscriptionID)
		if err != nil {
			return errors.NewValidationError(err.Error())
		}
		return uc.repos.Tickets.Create(txCtx, created)
	})
	if err != nil {
		uc.metrics.RecordEntry(ResultRejected)
		switch {
		case stderrors.Is(err, ticket.ErrOpenTicketExists):
			uc.logger.Warnw("vehicle already inside", "license_plate", plate)
			return nil, errors.NewBusinessRuleError(ticket.ErrOpenTicketExists.Error())
		case errors.IsAppError(err):
			return nil, err
		}
		uc.logger.Errorw("failed to register entry", "license_plate", plate, "error", err)
		return nil, errors.NewInternalError("failed to register entry")
	}

	uc.metrics.RecordEntry(ResultCompleted)
	uc.logger.Infow("entry registered",
		"ticket_id", created.ID(),
		"code", created.Code(),
		"subscriber", created.SubscriptionID() != nil,
	)

	return dto.ToTicketView(created, nil, nil), nil
}

func (uc *RegisterEntryUseCase) validateCommand(cmd RegisterEntryCommand) (vo.VehicleType, error) {
	if cmd.BranchID == 0 {
		return "", errors.NewValidationError("branch ID is required")
	}
	if shared.NormalizePlate(cmd.LicensePlate) == "" {
		return "", errors.NewValidationError("license plate is required")
	}
	if !shared.IsValidPlate(cmd.LicensePlate) {
		return "", errors.NewValidationError(fmt.Sprintf("license plate must be %d-%d letters, digits or dashes",
			shared.PlateMinLength, shared.PlateMaxLength))
	}
	vt, err := vo.NewVehicleType(cmd.VehicleType)
	if err != nil {
		return "", errors.NewValidationError(err.Error())
	}
	return vt, nil
}
