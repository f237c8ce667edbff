package valueobjects

import "fmt"

type TicketStatus string

const (
	StatusInProgress TicketStatus = "IN_PROGRESS"
	StatusCompleted  TicketStatus = "COMPLETED"
)

var validTicketStatuses = map[TicketStatus]bool{
	StatusInProgress: true,
	StatusCompleted:  true,
}

var ticketStatusTransitions = map[TicketStatus][]TicketStatus{
	StatusInProgress: {StatusCompleted},
	StatusCompleted:  {},
}

func (ts TicketStatus) String() string {
	return string(ts)
}

func (ts TicketStatus) IsValid() bool {
	return validTicketStatuses[ts]
}

func (ts TicketStatus) CanTransitionTo(newStatus TicketStatus) bool {
	for _, allowed := range ticketStatusTransitions[ts] {
		if allowed == newStatus {
			return true
		}
	}
	return false
}

func (ts TicketStatus) IsInProgress() bool {
	return ts == StatusInProgress
}

func (ts TicketStatus) IsCompleted() bool {
	return ts == StatusCompleted
}

func NewTicketStatus(s string) (TicketStatus, error) {
	ts := TicketStatus(s)
	if !ts.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %s", s)
	}
	return ts, nil
}
