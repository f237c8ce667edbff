package billing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Quota is the subscriber's standing at the moment of exit.
type Quota struct {
	MonthlyHours  decimal.Decimal
	ConsumedHours decimal.Decimal
}

// ChargeInput is everything needed to price a ticket. Quota is nil for
// non-subscribers.
type ChargeInput struct {
	EntryTime time.Time
	ExitTime  time.Time
	FreeHours decimal.Decimal
	Rate      ResolvedRate
	Quota     *Quota
}

// ChargeBreakdown is the full priced result for a ticket.
type ChargeBreakdown struct {
	TotalHours                decimal.Decimal
	FreeHoursGranted          decimal.Decimal
	BillableHours             decimal.Decimal
	RateApplied               decimal.Decimal
	RateSource                RateSource
	Subtotal                  decimal.Decimal
	SubscriptionHoursConsumed decimal.Decimal
	SubscriptionOverageHours  decimal.Decimal
	SubscriptionOverageCharge decimal.Decimal
	TotalAmount               decimal.Decimal
	Resolution                Resolution
}

// Resolution records the inputs a charge was priced from, for audit.
type Resolution struct {
	EntryTime      time.Time        `json:"entry_time"`
	ExitTime       time.Time        `json:"exit_time"`
	RateBaseID     *uint            `json:"rate_base_id,omitempty"`
	MonthlyHours   *decimal.Decimal `json:"monthly_hours,omitempty"`
	ConsumedBefore *decimal.Decimal `json:"consumed_before,omitempty"`
}

// HasOverage reports whether the ticket went past the remaining subscription quota.
func (b ChargeBreakdown) HasOverage() bool {
	return b.SubscriptionOverageHours.IsPositive()
}

// Calculate prices a ticket. It has no side effects.
func Calculate(in ChargeInput) (ChargeBreakdown, error) {
	if !in.Rate.Amount.IsPositive() {
		return ChargeBreakdown{}, ErrRateNotConfigured
	}

	total, err := ElapsedHours(in.EntryTime, in.ExitTime)
	if err != nil {
		return ChargeBreakdown{}, fmt.Errorf("entry %s, exit %s: %w",
			in.EntryTime.Format(time.RFC3339), in.ExitTime.Format(time.RFC3339), err)
	}

	free := decimal.Max(in.FreeHours, decimal.Zero)
	billable := BillableHours(total, free)

	b := ChargeBreakdown{
		TotalHours:                total,
		FreeHoursGranted:          free,
		BillableHours:             billable,
		RateApplied:               in.Rate.Amount,
		RateSource:                in.Rate.Source,
		SubscriptionHoursConsumed: decimal.Zero,
		SubscriptionOverageHours:  decimal.Zero,
		SubscriptionOverageCharge: decimal.Zero,
		Resolution: Resolution{
			EntryTime:  in.EntryTime,
			ExitTime:   in.ExitTime,
			RateBaseID: in.Rate.RateBaseID,
		},
	}

	if in.Quota == nil {
		b.Subtotal = Money(billable.Mul(in.Rate.Amount))
	} else {
		monthly, consumed := in.Quota.MonthlyHours, in.Quota.ConsumedHours
		b.Resolution.MonthlyHours = &monthly
		b.Resolution.ConsumedBefore = &consumed

		split := SplitQuota(billable, in.Quota.MonthlyHours, in.Quota.ConsumedHours, in.Rate.Amount)
		b.SubscriptionHoursConsumed = split.Consumed
		b.SubscriptionOverageHours = split.Overage
		b.SubscriptionOverageCharge = split.OverageCharge
		b.Subtotal = split.OverageCharge
	}
	b.TotalAmount = b.Subtotal

	return b, nil
}
