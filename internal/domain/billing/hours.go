package billing

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidTimeRange is returned for an exit before the entry.
var ErrInvalidTimeRange = errors.New("exit time is before entry time")

// secondsPerHundredth is 0.01h.
const secondsPerHundredth = 36

// ElapsedHours converts the whole seconds between entry and exit to hours,
// rounding up at the second decimal. 3h -> 3.00, 1s -> 0.01.
func ElapsedHours(entry, exit time.Time) (decimal.Decimal, error) {
	if exit.Before(entry) {
		return decimal.Zero, ErrInvalidTimeRange
	}
	secs := int64(exit.Sub(entry) / time.Second)
	hundredths := secs / secondsPerHundredth
	if secs%secondsPerHundredth != 0 {
		hundredths++
	}
	return decimal.New(hundredths, -2), nil
}

// BillableHours subtracts free hours from the total, floored at zero.
func BillableHours(total, free decimal.Decimal) decimal.Decimal {
	if free.IsNegative() {
		free = decimal.Zero
	}
	return decimal.Max(total.Sub(free), decimal.Zero)
}

// Money rounds an amount to cents, half away from zero.
func Money(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
