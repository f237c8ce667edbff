package billing

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/parkline/parkline/internal/domain/branch"
	"github.com/parkline/parkline/internal/domain/rate"
	"github.com/parkline/parkline/internal/domain/subscription"
)

// RateSource names which record supplied the hourly rate of a charge.
type RateSource string

const (
	RateSourceSubscription RateSource = "subscription"
	RateSourceRateBase     RateSource = "rate_base"
	RateSourceBranch       RateSource = "branch"
)

func (s RateSource) String() string {
	return string(s)
}

func (s RateSource) IsValid() bool {
	switch s {
	case RateSourceSubscription, RateSourceRateBase, RateSourceBranch:
		return true
	}
	return false
}

// ErrRateNotConfigured means no subscription, rate base or branch rate applies.
var ErrRateNotConfigured = errors.New("no hourly rate configured for ticket")

// ResolvedRate is the hourly rate applied to a ticket and where it came from.
type ResolvedRate struct {
	Amount     decimal.Decimal
	Source     RateSource
	RateBaseID *uint
}

// ResolveRate picks the hourly rate by priority: an active subscription's
// frozen rate, then the effective rate base, then the branch rate. Zero or
// negative candidates are skipped. sub and rb may be nil.
func ResolveRate(sub *subscription.Subscription, rb *rate.RateBase, br *branch.Branch) (ResolvedRate, error) {
	if sub != nil && sub.IsActive() && sub.FrozenRate().IsPositive() {
		return ResolvedRate{Amount: sub.FrozenRate(), Source: RateSourceSubscription}, nil
	}
	if rb != nil && rb.AmountPerHour().IsPositive() {
		id := rb.ID()
		return ResolvedRate{Amount: rb.AmountPerHour(), Source: RateSourceRateBase, RateBaseID: &id}, nil
	}
	if br != nil && br.HasRate() {
		return ResolvedRate{Amount: br.RatePerHour(), Source: RateSourceBranch}, nil
	}
	return ResolvedRate{}, ErrRateNotConfigured
}
