package valueobjects

import "fmt"

type SubscriptionStatus string

const (
	StatusActive    SubscriptionStatus = "ACTIVE"
	StatusSuspended SubscriptionStatus = "SUSPENDED"
	StatusCancelled SubscriptionStatus = "CANCELLED"
	StatusExpired   SubscriptionStatus = "EXPIRED"
)

var validStatuses = map[SubscriptionStatus]bool{
	StatusActive:    true,
	StatusSuspended: true,
	StatusCancelled: true,
	StatusExpired:   true,
}

func (s SubscriptionStatus) String() string {
	return string(s)
}

func (s SubscriptionStatus) IsValid() bool {
	return validStatuses[s]
}

// CanConsume reports whether tickets may draw on the subscription's quota
// and frozen rate.
func (s SubscriptionStatus) CanConsume() bool {
	return s == StatusActive
}

func NewSubscriptionStatus(s string) (SubscriptionStatus, error) {
	st := SubscriptionStatus(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid subscription status: %s", s)
	}
	return st, nil
}
