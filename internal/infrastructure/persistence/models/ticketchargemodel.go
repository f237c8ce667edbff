package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/parkline/parkline/internal/shared/constants"
)

// ChargeResolution is the JSON audit snapshot of what a charge was priced from.
type ChargeResolution struct {
	EntryTime      time.Time        `json:"entry_time"`
	ExitTime       time.Time        `json:"exit_time"`
	RateBaseID     *uint            `json:"rate_base_id,omitempty"`
	MonthlyHours   *decimal.Decimal `json:"monthly_hours,omitempty"`
	ConsumedBefore *decimal.Decimal `json:"consumed_before,omitempty"`
}

// TicketChargeModel is insert-only. The unique ticket_id index is the last
// line of defence against billing a ticket twice.
type TicketChargeModel struct {
	ID                        uint            `gorm:"primaryKey"`
	TicketID                  uint            `gorm:"not null;uniqueIndex"`
	TotalHours                decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	FreeHoursGranted          decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	BillableHours             decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	RateApplied               decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	RateSource                string          `gorm:"size:20;not null"`
	Subtotal                  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	SubscriptionHoursConsumed decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	SubscriptionOverageHours  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	SubscriptionOverageCharge decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	TotalAmount               decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Resolution                datatypes.JSONType[ChargeResolution]
	CreatedAt                 time.Time
}

func (TicketChargeModel) TableName() string {
	return constants.TableTicketCharges
}
