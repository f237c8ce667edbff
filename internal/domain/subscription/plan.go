package subscription

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Plan struct {
	id           uint
	name         string
	monthlyHours decimal.Decimal
	active       bool
	createdAt    time.Time
	updatedAt    time.Time
}

func NewPlan(name string, monthlyHours decimal.Decimal) (*Plan, error) {
	if name == "" {
		return nil, fmt.Errorf("plan name is required")
	}
	if len(name) > 100 {
		return nil, fmt.Errorf("plan name too long (max 100 characters)")
	}
	if monthlyHours.IsNegative() {
		return nil, fmt.Errorf("monthly hours cannot be negative")
	}
	now := time.Now().UTC()
	return &Plan{
		name:         name,
		monthlyHours: monthlyHours,
		active:       true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructPlan(id uint, name string, monthlyHours decimal.Decimal, active bool, createdAt, updatedAt time.Time) (*Plan, error) {
	if id == 0 {
		return nil, fmt.Errorf("plan ID cannot be zero")
	}
	return &Plan{
		id:           id,
		name:         name,
		monthlyHours: monthlyHours,
		active:       active,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (p *Plan) ID() uint {
	return p.id
}

func (p *Plan) Name() string {
	return p.name
}

func (p *Plan) MonthlyHours() decimal.Decimal {
	return p.monthlyHours
}

func (p *Plan) IsActive() bool {
	return p.active
}

func (p *Plan) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Plan) UpdatedAt() time.Time {
	return p.updatedAt
}

func (p *Plan) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("plan ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("plan ID cannot be zero")
	}
	p.id = id
	return nil
}
