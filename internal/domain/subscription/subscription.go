package subscription

import (
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/parkline/parkline/internal/domain/shared"
	vo "github.com/parkline/parkline/internal/domain/subscription/valueobjects"
)

// Subscription is a prepaid parking plan bought by a user for one or more
// plates. consumedHours is the quota used in the current billing cycle.
type Subscription struct {
	id            uint
	userID        uint
	planID        uint
	licensePlates []string
	frozenRate    decimal.Decimal
	consumedHours decimal.Decimal
	cycleStart    time.Time
	status        vo.SubscriptionStatus
	version       int
	createdAt     time.Time
	updatedAt     time.Time
}

func NewSubscription(
	userID uint,
	planID uint,
	licensePlates []string,
	frozenRate decimal.Decimal,
	cycleStart time.Time,
) (*Subscription, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if planID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}
	if len(licensePlates) == 0 {
		return nil, fmt.Errorf("at least one license plate is required")
	}
	if frozenRate.IsNegative() {
		return nil, fmt.Errorf("frozen rate cannot be negative")
	}

	now := time.Now().UTC()
	return &Subscription{
		userID:        userID,
		planID:        planID,
		licensePlates: normalizePlates(licensePlates),
		frozenRate:    frozenRate,
		consumedHours: decimal.Zero,
		cycleStart:    cycleStart.UTC(),
		status:        vo.StatusActive,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func ReconstructSubscription(
	id uint,
	userID uint,
	planID uint,
	licensePlates []string,
	frozenRate decimal.Decimal,
	consumedHours decimal.Decimal,
	cycleStart time.Time,
	status vo.SubscriptionStatus,
	version int,
	createdAt, updatedAt time.Time,
) (*Subscription, error) {
	if id == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid subscription status: %s", status)
	}
	return &Subscription{
		id:            id,
		userID:        userID,
		planID:        planID,
		licensePlates: normalizePlates(licensePlates),
		frozenRate:    frozenRate,
		consumedHours: consumedHours,
		cycleStart:    cycleStart,
		status:        status,
		version:       version,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}, nil
}

func normalizePlates(plates []string) []string {
	out := make([]string, 0, len(plates))
	for _, p := range plates {
		p = shared.NormalizePlate(p)
		if p != "" && !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	return out
}

func (s *Subscription) ID() uint {
	return s.id
}

func (s *Subscription) UserID() uint {
	return s.userID
}

func (s *Subscription) PlanID() uint {
	return s.planID
}

func (s *Subscription) LicensePlates() []string {
	return slices.Clone(s.licensePlates)
}

func (s *Subscription) FrozenRate() decimal.Decimal {
	return s.frozenRate
}

func (s *Subscription) ConsumedHours() decimal.Decimal {
	return s.consumedHours
}

func (s *Subscription) CycleStart() time.Time {
	return s.cycleStart
}

func (s *Subscription) Status() vo.SubscriptionStatus {
	return s.status
}

func (s *Subscription) Version() int {
	return s.version
}

func (s *Subscription) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Subscription) UpdatedAt() time.Time {
	return s.updatedAt
}

func (s *Subscription) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("subscription ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.id = id
	return nil
}

func (s *Subscription) IsActive() bool {
	return s.status.CanConsume()
}

func (s *Subscription) CoversPlate(plate string) bool {
	return slices.Contains(s.licensePlates, shared.NormalizePlate(plate))
}

// RecordConsumption mirrors a committed quota write on the in-memory copy.
// The persistent counter is only moved by SubscriptionRepository.AddConsumedHours.
func (s *Subscription) RecordConsumption(hours decimal.Decimal) error {
	if hours.IsNegative() {
		return fmt.Errorf("consumed hours cannot be negative")
	}
	s.consumedHours = s.consumedHours.Add(hours)
	s.version++
	s.updatedAt = time.Now().UTC()
	return nil
}

// NeedsCycleReset reports whether the subscription's cycle began before the
// given cycle start.
func (s *Subscription) NeedsCycleReset(cycleStart time.Time) bool {
	return s.cycleStart.Before(cycleStart)
}
