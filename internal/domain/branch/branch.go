package branch

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrBranchNotFound = errors.New("branch not found")
	ErrBranchInactive = errors.New("branch is not active")
)

// Branch is a parking site. Branches are administered elsewhere; this
// service only reads them.
type Branch struct {
	id          uint
	name        string
	ratePerHour decimal.Decimal
	active      bool
	createdAt   time.Time
	updatedAt   time.Time
}

func ReconstructBranch(
	id uint,
	name string,
	ratePerHour decimal.Decimal,
	active bool,
	createdAt, updatedAt time.Time,
) (*Branch, error) {
	if id == 0 {
		return nil, fmt.Errorf("branch ID cannot be zero")
	}
	if name == "" {
		return nil, fmt.Errorf("branch name is required")
	}
	if ratePerHour.IsNegative() {
		return nil, fmt.Errorf("branch rate per hour cannot be negative")
	}
	return &Branch{
		id:          id,
		name:        name,
		ratePerHour: ratePerHour,
		active:      active,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (b *Branch) ID() uint {
	return b.id
}

func (b *Branch) Name() string {
	return b.name
}

// RatePerHour is zero when the branch has no rate of its own.
func (b *Branch) RatePerHour() decimal.Decimal {
	return b.ratePerHour
}

func (b *Branch) HasRate() bool {
	return b.ratePerHour.IsPositive()
}

func (b *Branch) IsActive() bool {
	return b.active
}

func (b *Branch) CreatedAt() time.Time {
	return b.createdAt
}

func (b *Branch) UpdatedAt() time.Time {
	return b.updatedAt
}
