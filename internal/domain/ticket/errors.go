package ticket

import "errors"

var (
	ErrTicketNotFound        = errors.New("ticket not found")
	ErrNotInProgress         = errors.New("ticket is not in progress")
	ErrExitAlreadyRegistered = errors.New("exit already registered")
	ErrExitBeforeEntry       = errors.New("exit time is before entry time")
	ErrOpenTicketExists      = errors.New("vehicle already has an open ticket")
	ErrChargeNotFound        = errors.New("ticket charge not found")
	ErrInvalidFreeHours      = errors.New("granted hours must be positive")
	ErrConcurrentCompletion  = errors.New("ticket was completed concurrently")
)

// ErrExitInProgress is returned by an exit guard that is already held for
// the ticket.
var ErrExitInProgress = errors.New("exit already being processed")
