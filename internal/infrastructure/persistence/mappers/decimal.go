package mappers

import (
	"time"

	"github.com/shopspring/decimal"
)

// amount normalizes a decimal column read back from the driver. Some drivers
// return NUMERIC columns as float64.
func amount(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func amountPtr(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := amount(*d)
	return &v
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
