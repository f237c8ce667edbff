package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/parkline/parkline/internal/shared/constants"
)

type FreeHoursGrantModel struct {
	ID           uint            `gorm:"primaryKey"`
	TicketID     uint            `gorm:"not null;index"`
	BusinessID   uint            `gorm:"not null;index"`
	GrantedHours decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt    time.Time
}

func (FreeHoursGrantModel) TableName() string {
	return constants.TableFreeHoursGrants
}
