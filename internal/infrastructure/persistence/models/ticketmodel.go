package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/parkline/parkline/internal/shared/constants"
)

type TicketModel struct {
	ID             uint      `gorm:"primaryKey"`
	Code           string    `gorm:"uniqueIndex;size:32;not null"`
	BranchID       uint      `gorm:"not null;index"`
	LicensePlate   string    `gorm:"size:20;not null;index:idx_ticket_plate_status,priority:1"`
	VehicleType    string    `gorm:"size:20;not null"`
	Status         string    `gorm:"size:20;not null;index:idx_ticket_plate_status,priority:2"`
	EntryTime      time.Time `gorm:"not null"`
	ExitTime       *time.Time
	SubscriptionID *uint `gorm:"index"`
	Version        int   `gorm:"not null;default:1"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (TicketModel) TableName() string {
	return constants.TableTickets
}

func (t *TicketModel) BeforeCreate(tx *gorm.DB) error {
	if t.Version == 0 {
		t.Version = 1
	}
	return nil
}
