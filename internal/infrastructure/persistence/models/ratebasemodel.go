package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/parkline/parkline/internal/shared/constants"
)

// RateBaseModel is one entry of the global rate history. end_date is
// exclusive; NULL means open-ended.
type RateBaseModel struct {
	ID            uint            `gorm:"primarykey"`
	AmountPerHour decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	StartDate     time.Time       `gorm:"not null;index:idx_rate_base_effective,priority:2"`
	EndDate       *time.Time
	Active        bool `gorm:"not null;index:idx_rate_base_effective,priority:1"`
	CreatedAt     time.Time
}

func (RateBaseModel) TableName() string {
	return constants.TableRateBases
}
