package subscription

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Overage is the audit row for hours a subscriber parked beyond the
// monthly quota on a single ticket.
type Overage struct {
	id             uint
	subscriptionID uint
	ticketID       uint
	overageHours   decimal.Decimal
	rateApplied    decimal.Decimal
	chargedAmount  decimal.Decimal
	createdAt      time.Time
}

func NewOverage(subscriptionID, ticketID uint, hours, rate, amount decimal.Decimal, at time.Time) (*Overage, error) {
	if subscriptionID == 0 || ticketID == 0 {
		return nil, fmt.Errorf("subscription and ticket are required")
	}
	if !hours.IsPositive() {
		return nil, ErrInvalidOverage
	}
	return &Overage{
		subscriptionID: subscriptionID,
		ticketID:       ticketID,
		overageHours:   hours,
		rateApplied:    rate,
		chargedAmount:  amount,
		createdAt:      at,
	}, nil
}

func ReconstructOverage(id, subscriptionID, ticketID uint, hours, rate, amount decimal.Decimal, createdAt time.Time) *Overage {
	return &Overage{
		id:             id,
		subscriptionID: subscriptionID,
		ticketID:       ticketID,
		overageHours:   hours,
		rateApplied:    rate,
		chargedAmount:  amount,
		createdAt:      createdAt,
	}
}

func (o *Overage) ID() uint                       { return o.id }
func (o *Overage) SubscriptionID() uint           { return o.subscriptionID }
func (o *Overage) TicketID() uint                 { return o.ticketID }
func (o *Overage) OverageHours() decimal.Decimal  { return o.overageHours }
func (o *Overage) RateApplied() decimal.Decimal   { return o.rateApplied }
func (o *Overage) ChargedAmount() decimal.Decimal { return o.chargedAmount }
func (o *Overage) CreatedAt() time.Time           { return o.createdAt }

func (o *Overage) SetID(id uint) {
	o.id = id
}
