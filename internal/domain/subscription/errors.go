package subscription

import (
	"errors"
)

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrPlanNotFound         = errors.New("subscription plan not found")
	// ErrConcurrentUpdate is returned when the subscription version moved
	// between read and write. Callers reload and retry.
	ErrConcurrentUpdate = errors.New("subscription was updated concurrently")
	ErrInvalidOverage   = errors.New("overage hours must be positive")
)
