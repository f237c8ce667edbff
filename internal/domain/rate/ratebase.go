// Package rate holds the rate-base history: the time-ranged, system-wide
// default hourly rate.
package rate

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

type RateBase struct {
	id            uint
	amountPerHour decimal.Decimal
	startDate     time.Time
	endDate       *time.Time
	active        bool
	createdAt     time.Time
}

func NewRateBase(amountPerHour decimal.Decimal, startDate time.Time, endDate *time.Time) (*RateBase, error) {
	if !amountPerHour.IsPositive() {
		return nil, fmt.Errorf("amount per hour must be positive")
	}
	if startDate.IsZero() {
		return nil, fmt.Errorf("start date is required")
	}
	if endDate != nil && !endDate.After(startDate) {
		return nil, fmt.Errorf("end date must be after start date")
	}
	return &RateBase{
		amountPerHour: amountPerHour,
		startDate:     startDate.UTC(),
		endDate:       endDate,
		active:        true,
		createdAt:     time.Now().UTC(),
	}, nil
}

func ReconstructRateBase(
	id uint,
	amountPerHour decimal.Decimal,
	startDate time.Time,
	endDate *time.Time,
	active bool,
	createdAt time.Time,
) (*RateBase, error) {
	if id == 0 {
		return nil, fmt.Errorf("rate base ID cannot be zero")
	}
	return &RateBase{
		id:            id,
		amountPerHour: amountPerHour,
		startDate:     startDate,
		endDate:       endDate,
		active:        active,
		createdAt:     createdAt,
	}, nil
}

func (r *RateBase) ID() uint {
	return r.id
}

func (r *RateBase) AmountPerHour() decimal.Decimal {
	return r.amountPerHour
}

func (r *RateBase) StartDate() time.Time {
	return r.startDate
}

func (r *RateBase) EndDate() *time.Time {
	return r.endDate
}

func (r *RateBase) IsActive() bool {
	return r.active
}

func (r *RateBase) CreatedAt() time.Time {
	return r.createdAt
}

func (r *RateBase) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("rate base ID is already set")
	}
	r.id = id
	return nil
}

// IsEffectiveAt reports whether the record is active and at falls in
// [startDate, endDate). A nil end date is open-ended.
func (r *RateBase) IsEffectiveAt(at time.Time) bool {
	if !r.active || r.startDate.After(at) {
		return false
	}
	return r.endDate == nil || r.endDate.After(at)
}

// SelectEffective returns the record in effect at the given instant, or nil.
// Overlapping records resolve to the most recent start date, then the
// highest id.
func SelectEffective(rates []*RateBase, at time.Time) *RateBase {
	candidates := make([]*RateBase, 0, len(rates))
	for _, r := range rates {
		if r != nil && r.IsEffectiveAt(at) {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.Slice(candidates, func(i, j int) bool {
		if !candidates[i].startDate.Equal(candidates[j].startDate) {
			return candidates[i].startDate.After(candidates[j].startDate)
		}
		return candidates[i].id > candidates[j].id
	})
	return candidates[0]
}
