package ticket

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// FreeHoursGrant is a number of free hours a commerce partner gave to a
// ticket. Grants are only ever added up.
type FreeHoursGrant struct {
	id           uint
	ticketID     uint
	businessID   uint
	grantedHours decimal.Decimal
	createdAt    time.Time
}

func NewFreeHoursGrant(ticketID, businessID uint, hours decimal.Decimal, at time.Time) (*FreeHoursGrant, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if businessID == 0 {
		return nil, fmt.Errorf("business ID is required")
	}
	if !hours.IsPositive() {
		return nil, ErrInvalidFreeHours
	}
	return &FreeHoursGrant{
		ticketID:     ticketID,
		businessID:   businessID,
		grantedHours: hours.Round(2),
		createdAt:    at.UTC(),
	}, nil
}

func (g *FreeHoursGrant) ID() uint                      { return g.id }
func (g *FreeHoursGrant) TicketID() uint                { return g.ticketID }
func (g *FreeHoursGrant) BusinessID() uint              { return g.businessID }
func (g *FreeHoursGrant) GrantedHours() decimal.Decimal { return g.grantedHours }
func (g *FreeHoursGrant) CreatedAt() time.Time          { return g.createdAt }

func (g *FreeHoursGrant) SetID(id uint) {
	g.id = id
}
