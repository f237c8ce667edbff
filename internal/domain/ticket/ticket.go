package ticket

import (
	"fmt"
	"time"

	"github.com/parkline/parkline/internal/domain/shared"
	vo "github.com/parkline/parkline/internal/domain/ticket/valueobjects"
)

// Ticket is one stay of a vehicle at a branch, from entry to exit.
type Ticket struct {
	id             uint
	code           string
	branchID       uint
	licensePlate   string
	vehicleType    vo.VehicleType
	entryTime      time.Time
	exitTime       *time.Time
	subscriptionID *uint
	status         vo.TicketStatus
	version        int
	createdAt      time.Time
	updatedAt      time.Time
}

func NewTicket(
	code string,
	branchID uint,
	licensePlate string,
	vehicleType vo.VehicleType,
	entryTime time.Time,
	subscriptionID *uint,
) (*Ticket, error) {
	if code == "" {
		return nil, fmt.Errorf("ticket code is required")
	}
	if branchID == 0 {
		return nil, fmt.Errorf("branch ID is required")
	}
	plate := shared.NormalizePlate(licensePlate)
	if plate == "" {
		return nil, fmt.Errorf("license plate is required")
	}
	if !shared.IsValidPlate(plate) {
		return nil, fmt.Errorf("license plate must be %d-%d letters, digits or dashes", shared.PlateMinLength, shared.PlateMaxLength)
	}
	if !vehicleType.IsValid() {
		return nil, fmt.Errorf("invalid vehicle type")
	}
	if entryTime.IsZero() {
		return nil, fmt.Errorf("entry time is required")
	}

	now := time.Now().UTC()
	return &Ticket{
		code:           code,
		branchID:       branchID,
		licensePlate:   plate,
		vehicleType:    vehicleType,
		entryTime:      entryTime.UTC(),
		subscriptionID: subscriptionID,
		status:         vo.StatusInProgress,
		version:        1,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructTicket(
	id uint,
	code string,
	branchID uint,
	licensePlate string,
	vehicleType vo.VehicleType,
	entryTime time.Time,
	exitTime *time.Time,
	subscriptionID *uint,
	status vo.TicketStatus,
	version int,
	createdAt, updatedAt time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if code == "" {
		return nil, fmt.Errorf("ticket code is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status")
	}
	if !vehicleType.IsValid() {
		return nil, fmt.Errorf("invalid vehicle type")
	}

	return &Ticket{
		id:             id,
		code:           code,
		branchID:       branchID,
		licensePlate:   licensePlate,
		vehicleType:    vehicleType,
		entryTime:      entryTime,
		exitTime:       exitTime,
		subscriptionID: subscriptionID,
		status:         status,
		version:        version,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

func (t *Ticket) ID() uint {
	return t.id
}

func (t *Ticket) Code() string {
	return t.code
}

func (t *Ticket) BranchID() uint {
	return t.branchID
}

func (t *Ticket) LicensePlate() string {
	return t.licensePlate
}

func (t *Ticket) VehicleType() vo.VehicleType {
	return t.vehicleType
}

func (t *Ticket) EntryTime() time.Time {
	return t.entryTime
}

func (t *Ticket) ExitTime() *time.Time {
	return t.exitTime
}

func (t *Ticket) SubscriptionID() *uint {
	return t.subscriptionID
}

func (t *Ticket) Status() vo.TicketStatus {
	return t.status
}

func (t *Ticket) Version() int {
	return t.version
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) UpdatedAt() time.Time {
	return t.updatedAt
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

func (t *Ticket) IsOpen() bool {
	return t.status.IsInProgress() && t.exitTime == nil
}

// CheckExitable reports why the ticket cannot be exited, checking status
// before the exit time.
func (t *Ticket) CheckExitable() error {
	if !t.status.IsInProgress() {
		return ErrNotInProgress
	}
	if t.exitTime != nil {
		return ErrExitAlreadyRegistered
	}
	return nil
}

// RegisterExit stamps the exit time and completes the ticket.
func (t *Ticket) RegisterExit(at time.Time) error {
	if err := t.CheckExitable(); err != nil {
		return err
	}
	if at.Before(t.entryTime) {
		return ErrExitBeforeEntry
	}
	if !t.status.CanTransitionTo(vo.StatusCompleted) {
		return fmt.Errorf("cannot transition from %s to %s", t.status, vo.StatusCompleted)
	}

	exit := at.UTC()
	t.exitTime = &exit
	t.status = vo.StatusCompleted
	t.updatedAt = exit
	t.version++
	return nil
}
