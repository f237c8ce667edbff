package mappers

import (
	"fmt"

	"gorm.io/datatypes"

	"github.com/parkline/parkline/internal/domain/billing"
	"github.com/parkline/parkline/internal/domain/ticket"
	vo "github.com/parkline/parkline/internal/domain/ticket/valueobjects"
	"github.com/parkline/parkline/internal/infrastructure/persistence/models"
)

// TicketMapper handles the conversion between ticket aggregates and persistence models.
type TicketMapper interface {
	ToModel(t *ticket.Ticket) *models.TicketModel
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)

	ChargeToModel(c *ticket.Charge) *models.TicketChargeModel
	ChargeToDomain(model *models.TicketChargeModel) (*ticket.Charge, error)

	GrantToModel(g *ticket.FreeHoursGrant) *models.FreeHoursGrantModel
}

// TicketMapperImpl is the concrete implementation of TicketMapper.
type TicketMapperImpl struct{}

// NewTicketMapper creates a new TicketMapper.
func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	return &models.TicketModel{
		ID:             t.ID(),
		Code:           t.Code(),
		BranchID:       t.BranchID(),
		LicensePlate:   t.LicensePlate(),
		VehicleType:    t.VehicleType().String(),
		Status:         t.Status().String(),
		EntryTime:      t.EntryTime(),
		ExitTime:       t.ExitTime(),
		SubscriptionID: t.SubscriptionID(),
		Version:        t.Version(),
		CreatedAt:      t.CreatedAt(),
		UpdatedAt:      t.UpdatedAt(),
	}
}

func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	status, err := vo.NewTicketStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("ticket %d: %w", model.ID, err)
	}
	vehicleType, err := vo.NewVehicleType(model.VehicleType)
	if err != nil {
		return nil, fmt.Errorf("ticket %d: %w", model.ID, err)
	}

	return ticket.ReconstructTicket(
		model.ID,
		model.Code,
		model.BranchID,
		model.LicensePlate,
		vehicleType,
		model.EntryTime.UTC(),
		utcPtr(model.ExitTime),
		model.SubscriptionID,
		status,
		model.Version,
		model.CreatedAt.UTC(),
		model.UpdatedAt.UTC(),
	)
}

func (m *TicketMapperImpl) ChargeToModel(c *ticket.Charge) *models.TicketChargeModel {
	b := c.Breakdown()
	return &models.TicketChargeModel{
		ID:                        c.ID(),
		TicketID:                  c.TicketID(),
		TotalHours:                b.TotalHours,
		FreeHoursGranted:          b.FreeHoursGranted,
		BillableHours:             b.BillableHours,
		RateApplied:               b.RateApplied,
		RateSource:                b.RateSource.String(),
		Subtotal:                  b.Subtotal,
		SubscriptionHoursConsumed: b.SubscriptionHoursConsumed,
		SubscriptionOverageHours:  b.SubscriptionOverageHours,
		SubscriptionOverageCharge: b.SubscriptionOverageCharge,
		TotalAmount:               b.TotalAmount,
		Resolution: datatypes.NewJSONType(models.ChargeResolution{
			EntryTime:      b.Resolution.EntryTime,
			ExitTime:       b.Resolution.ExitTime,
			RateBaseID:     b.Resolution.RateBaseID,
			MonthlyHours:   b.Resolution.MonthlyHours,
			ConsumedBefore: b.Resolution.ConsumedBefore,
		}),
		CreatedAt: c.CreatedAt(),
	}
}

func (m *TicketMapperImpl) ChargeToDomain(model *models.TicketChargeModel) (*ticket.Charge, error) {
	source := billing.RateSource(model.RateSource)
	if !source.IsValid() {
		return nil, fmt.Errorf("charge %d: invalid rate source %q", model.ID, model.RateSource)
	}

	res := model.Resolution.Data()
	breakdown := billing.ChargeBreakdown{
		TotalHours:                amount(model.TotalHours),
		FreeHoursGranted:          amount(model.FreeHoursGranted),
		BillableHours:             amount(model.BillableHours),
		RateApplied:               amount(model.RateApplied),
		RateSource:                source,
		Subtotal:                  amount(model.Subtotal),
		SubscriptionHoursConsumed: amount(model.SubscriptionHoursConsumed),
		SubscriptionOverageHours:  amount(model.SubscriptionOverageHours),
		SubscriptionOverageCharge: amount(model.SubscriptionOverageCharge),
		TotalAmount:               amount(model.TotalAmount),
		Resolution: billing.Resolution{
			EntryTime:      res.EntryTime.UTC(),
			ExitTime:       res.ExitTime.UTC(),
			RateBaseID:     res.RateBaseID,
			MonthlyHours:   amountPtr(res.MonthlyHours),
			ConsumedBefore: amountPtr(res.ConsumedBefore),
		},
	}

	return ticket.ReconstructCharge(model.ID, model.TicketID, breakdown, model.CreatedAt.UTC()), nil
}

func (m *TicketMapperImpl) GrantToModel(g *ticket.FreeHoursGrant) *models.FreeHoursGrantModel {
	return &models.FreeHoursGrantModel{
		ID:           g.ID(),
		TicketID:     g.TicketID(),
		BusinessID:   g.BusinessID(),
		GrantedHours: g.GrantedHours(),
		CreatedAt:    g.CreatedAt(),
	}
}
