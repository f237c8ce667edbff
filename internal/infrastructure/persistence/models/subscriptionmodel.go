package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/parkline/parkline/internal/shared/constants"
)

// SubscriptionModel represents the database persistence model for subscriptions.
// consumed_hours is only written through the versioned update in the
// repository and by the monthly cycle reset.
type SubscriptionModel struct {
	ID            uint            `gorm:"primarykey"`
	UserID        uint            `gorm:"not null;index"`
	PlanID        uint            `gorm:"not null;index"`
	FrozenRate    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	ConsumedHours decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	CycleStart    time.Time       `gorm:"not null;index"`
	Status        string          `gorm:"not null;size:20;index"`
	Version       int             `gorm:"not null;default:1"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (SubscriptionModel) TableName() string {
	return constants.TableSubscriptions
}

func (s *SubscriptionModel) BeforeCreate(tx *gorm.DB) error {
	if s.Version == 0 {
		s.Version = 1
	}
	return nil
}

// SubscriptionPlateModel links a fleet subscription to one license plate.
type SubscriptionPlateModel struct {
	ID             uint   `gorm:"primarykey"`
	SubscriptionID uint   `gorm:"not null;uniqueIndex:idx_subscription_plate,priority:1"`
	LicensePlate   string `gorm:"not null;size:20;uniqueIndex:idx_subscription_plate,priority:2;index"`
	CreatedAt      time.Time
}

func (SubscriptionPlateModel) TableName() string {
	return constants.TableSubscriptionPlates
}
