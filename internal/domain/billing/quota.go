package billing

import "github.com/shopspring/decimal"

// QuotaSplit divides a subscriber ticket's billable hours between the
// remaining monthly quota and overage.
type QuotaSplit struct {
	RemainingBefore decimal.Decimal
	Consumed        decimal.Decimal
	Overage         decimal.Decimal
	OverageCharge   decimal.Decimal
	ConsumedAfter   decimal.Decimal
}

// SplitQuota computes the split. consumedHours is not clamped to
// monthlyHours; a counter already past quota leaves nothing remaining.
func SplitQuota(billable, monthlyHours, consumedHours, rate decimal.Decimal) QuotaSplit {
	remaining := decimal.Max(monthlyHours.Sub(consumedHours), decimal.Zero)
	consumed := decimal.Min(billable, remaining)
	overage := billable.Sub(consumed)

	return QuotaSplit{
		RemainingBefore: remaining,
		Consumed:        consumed,
		Overage:         overage,
		OverageCharge:   Money(overage.Mul(rate)),
		ConsumedAfter:   consumedHours.Add(consumed),
	}
}
