package parking

import (
	"github.com/shopspring/decimal"

	"github.com/parkline/parkline/internal/application/parking/usecases"
)

type RegisterEntryRequest struct {
	BranchID     uint   `json:"branch_id" binding:"required"`
	LicensePlate string `json:"license_plate" binding:"required,plate"`
	VehicleType  string `json:"vehicle_type,omitempty" binding:"max=20"`
}

func (r *RegisterEntryRequest) ToCommand() usecases.RegisterEntryCommand {
	return usecases.RegisterEntryCommand{
		BranchID:     r.BranchID,
		LicensePlate: r.LicensePlate,
		VehicleType:  r.VehicleType,
	}
}

// GrantFreeHoursRequest accepts hours as a JSON number or a decimal string.
// Positivity is checked by the use case.
type GrantFreeHoursRequest struct {
	BusinessID uint            `json:"business_id" binding:"required"`
	Hours      decimal.Decimal `json:"hours"`
}

func (r *GrantFreeHoursRequest) ToCommand(ticketID uint) usecases.GrantFreeHoursCommand {
	return usecases.GrantFreeHoursCommand{
		TicketID:   ticketID,
		BusinessID: r.BusinessID,
		Hours:      r.Hours,
	}
}
