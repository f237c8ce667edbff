package ticket

import (
	"context"

	"github.com/shopspring/decimal"
)

type TicketRepository interface {
	Create(ctx context.Context, ticket *Ticket) error
	// GetByID returns ErrTicketNotFound when no row matches.
	GetByID(ctx context.Context, id uint) (*Ticket, error)
	// GetByIDForUpdate locks the row for the rest of the transaction in ctx.
	GetByIDForUpdate(ctx context.Context, id uint) (*Ticket, error)
	// Complete persists exit time and status, guarded on the row still being
	// open. It returns ErrConcurrentCompletion when it was not.
	Complete(ctx context.Context, ticket *Ticket) error
	// FindOpenByPlate returns nil, nil when the plate has no open ticket.
	FindOpenByPlate(ctx context.Context, plate string) (*Ticket, error)
}

type ChargeRepository interface {
	// Create fails with a duplicate error if the ticket already has a charge.
	Create(ctx context.Context, charge *Charge) error
	// GetByTicketID returns ErrChargeNotFound when no row matches.
	GetByTicketID(ctx context.Context, ticketID uint) (*Charge, error)
}

type FreeHoursRepository interface {
	Create(ctx context.Context, grant *FreeHoursGrant) error
	// SumGrantedHoursByTicketID is zero when the ticket has no grants.
	SumGrantedHoursByTicketID(ctx context.Context, ticketID uint) (decimal.Decimal, error)
}
