package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/parkline/parkline/internal/shared/constants"
)

type SubscriptionOverageModel struct {
	ID             uint            `gorm:"primarykey"`
	SubscriptionID uint            `gorm:"not null;index"`
	TicketID       uint            `gorm:"not null;uniqueIndex"`
	OverageHours   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	RateApplied    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ChargedAmount  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt      time.Time
}

func (SubscriptionOverageModel) TableName() string {
	return constants.TableSubscriptionOverage
}
