package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/parkline/parkline/internal/shared/constants"
)

type SubscriptionPlanModel struct {
	ID           uint            `gorm:"primarykey"`
	Name         string          `gorm:"not null;size:100;uniqueIndex"`
	MonthlyHours decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Active       bool            `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (SubscriptionPlanModel) TableName() string {
	return constants.TableSubscriptionPlans
}
