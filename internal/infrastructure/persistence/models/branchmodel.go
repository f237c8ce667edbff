package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/parkline/parkline/internal/shared/constants"
)

// BranchModel is a parking facility. A zero rate means the branch has no
// rate of its own.
type BranchModel struct {
	ID          uint            `gorm:"primaryKey"`
	Name        string          `gorm:"size:100;not null;uniqueIndex"`
	RatePerHour decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Active      bool            `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (BranchModel) TableName() string {
	return constants.TableBranches
}
