package ticket

import (
	"fmt"
	"time"

	"github.com/parkline/parkline/internal/domain/billing"
)

// Charge is the immutable priced result of a completed ticket. There is at
// most one per ticket.
type Charge struct {
	id        uint
	ticketID  uint
	breakdown billing.ChargeBreakdown
	createdAt time.Time
}

func NewCharge(ticketID uint, breakdown billing.ChargeBreakdown, at time.Time) (*Charge, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if !breakdown.RateSource.IsValid() {
		return nil, fmt.Errorf("invalid rate source: %q", breakdown.RateSource)
	}
	if breakdown.TotalAmount.IsNegative() {
		return nil, fmt.Errorf("total amount cannot be negative")
	}
	return &Charge{
		ticketID:  ticketID,
		breakdown: breakdown,
		createdAt: at.UTC(),
	}, nil
}

func ReconstructCharge(id, ticketID uint, breakdown billing.ChargeBreakdown, createdAt time.Time) *Charge {
	return &Charge{
		id:        id,
		ticketID:  ticketID,
		breakdown: breakdown,
		createdAt: createdAt,
	}
}

func (c *Charge) ID() uint {
	return c.id
}

func (c *Charge) TicketID() uint {
	return c.ticketID
}

func (c *Charge) Breakdown() billing.ChargeBreakdown {
	return c.breakdown
}

func (c *Charge) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Charge) SetID(id uint) {
	c.id = id
}
