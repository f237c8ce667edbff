// Package seeds loads reference data (branches, plans, rate history and
// subscriptions) from YAML fixtures.
package seeds

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/parkline/parkline/internal/domain/shared"
	vo "github.com/parkline/parkline/internal/domain/subscription/valueobjects"
	"github.com/parkline/parkline/internal/infrastructure/persistence/models"
	"github.com/parkline/parkline/internal/shared/biztime"
)

//go:embed default.yaml
var defaultFixture []byte

type Fixture struct {
	Branches      []BranchSeed       `yaml:"branches"`
	RateBases     []RateBaseSeed     `yaml:"rate_bases"`
	Plans         []PlanSeed         `yaml:"plans"`
	Subscriptions []SubscriptionSeed `yaml:"subscriptions"`
}

type BranchSeed struct {
	Name        string          `yaml:"name"`
	RatePerHour decimal.Decimal `yaml:"rate_per_hour"`
	Active      *bool           `yaml:"active"`
}

type RateBaseSeed struct {
	AmountPerHour decimal.Decimal `yaml:"amount_per_hour"`
	StartDate     time.Time       `yaml:"start_date"`
	EndDate       *time.Time      `yaml:"end_date"`
}

type PlanSeed struct {
	Name         string          `yaml:"name"`
	MonthlyHours decimal.Decimal `yaml:"monthly_hours"`
}

type SubscriptionSeed struct {
	UserID        uint            `yaml:"user_id"`
	Plan          string          `yaml:"plan"`
	FrozenRate    decimal.Decimal `yaml:"frozen_rate"`
	LicensePlates []string        `yaml:"license_plates"`
}

// Result counts rows created; rows that already existed are skipped.
type Result struct {
	Branches      int
	RateBases     int
	Plans         int
	Subscriptions int
}

func Default() (*Fixture, error) {
	return Parse(defaultFixture)
}

func LoadFile(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *Fixture) validate() error {
	plans := make(map[string]bool, len(f.Plans))
	for _, p := range f.Plans {
		if p.Name == "" {
			return errors.New("plan name is required")
		}
		plans[p.Name] = true
	}
	for _, b := range f.Branches {
		if b.Name == "" {
			return errors.New("branch name is required")
		}
		if b.RatePerHour.IsNegative() {
			return fmt.Errorf("branch %s: rate per hour cannot be negative", b.Name)
		}
	}
	for i, rb := range f.RateBases {
		if !rb.AmountPerHour.IsPositive() {
			return fmt.Errorf("rate base %d: amount per hour must be positive", i)
		}
		if rb.EndDate != nil && !rb.EndDate.After(rb.StartDate) {
			return fmt.Errorf("rate base %d: end date must be after start date", i)
		}
	}
	for i, s := range f.Subscriptions {
		if !plans[s.Plan] {
			return fmt.Errorf("subscription %d: unknown plan %q", i, s.Plan)
		}
		if len(s.LicensePlates) == 0 {
			return fmt.Errorf("subscription %d: at least one license plate is required", i)
		}
	}
	return nil
}

// Apply inserts the fixture in one transaction. Branches and plans are
// matched by name, rate bases by start date, and a subscription is skipped
// when any of its plates is already subscribed.
func Apply(db *gorm.DB, f *Fixture) (*Result, error) {
	res := &Result{}
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, b := range f.Branches {
			active := b.Active == nil || *b.Active
			m := models.BranchModel{Name: b.Name, RatePerHour: b.RatePerHour.Round(2), Active: active}
			created, err := firstOrCreate(tx, &m, models.BranchModel{Name: b.Name})
			if err != nil {
				return fmt.Errorf("failed to seed branch %s: %w", b.Name, err)
			}
			if created {
				res.Branches++
			}
		}

		for _, rb := range f.RateBases {
			m := models.RateBaseModel{
				AmountPerHour: rb.AmountPerHour.Round(2),
				StartDate:     rb.StartDate.UTC(),
				EndDate:       utc(rb.EndDate),
				Active:        true,
			}
			created, err := firstOrCreate(tx, &m, models.RateBaseModel{StartDate: m.StartDate})
			if err != nil {
				return fmt.Errorf("failed to seed rate base: %w", err)
			}
			if created {
				res.RateBases++
			}
		}

		planIDs := make(map[string]uint, len(f.Plans))
		for _, p := range f.Plans {
			m := models.SubscriptionPlanModel{Name: p.Name, MonthlyHours: p.MonthlyHours.Round(2), Active: true}
			created, err := firstOrCreate(tx, &m, models.SubscriptionPlanModel{Name: p.Name})
			if err != nil {
				return fmt.Errorf("failed to seed plan %s: %w", p.Name, err)
			}
			if created {
				res.Plans++
			}
			planIDs[p.Name] = m.ID
		}

		cycleStart := biztime.StartOfMonthUTC(biztime.NowUTC())
		for _, s := range f.Subscriptions {
			created, err := seedSubscription(tx, s, planIDs[s.Plan], cycleStart)
			if err != nil {
				return err
			}
			if created {
				res.Subscriptions++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func seedSubscription(tx *gorm.DB, s SubscriptionSeed, planID uint, cycleStart time.Time) (bool, error) {
	plates := make([]string, 0, len(s.LicensePlates))
	for _, p := range s.LicensePlates {
		plates = append(plates, shared.NormalizePlate(p))
	}

	var taken int64
	if err := tx.Model(&models.SubscriptionPlateModel{}).
		Where("license_plate IN ?", plates).
		Count(&taken).Error; err != nil {
		return false, fmt.Errorf("failed to check subscription plates: %w", err)
	}
	if taken > 0 {
		return false, nil
	}

	sub := models.SubscriptionModel{
		UserID:     s.UserID,
		PlanID:     planID,
		FrozenRate: s.FrozenRate.Round(2),
		CycleStart: cycleStart,
		Status:     vo.StatusActive.String(),
	}
	if err := tx.Create(&sub).Error; err != nil {
		return false, fmt.Errorf("failed to seed subscription: %w", err)
	}

	rows := make([]models.SubscriptionPlateModel, 0, len(plates))
	for _, p := range plates {
		rows = append(rows, models.SubscriptionPlateModel{SubscriptionID: sub.ID, LicensePlate: p})
	}
	if err := tx.Create(&rows).Error; err != nil {
		return false, fmt.Errorf("failed to seed subscription plates: %w", err)
	}
	return true, nil
}

// firstOrCreate reports whether the row was inserted.
func firstOrCreate[T any](tx *gorm.DB, dest *T, where T) (bool, error) {
	err := tx.Where(where).First(dest).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	if err := tx.Create(dest).Error; err != nil {
		return false, err
	}
	return true, nil
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
