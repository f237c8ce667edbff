package rate

import (
	"context"
	"time"
)

type RateBaseRepository interface {
	Create(ctx context.Context, r *RateBase) error
	// FindCurrentActive returns the record in effect at the given instant
	// using the SelectEffective tie-break, or nil, nil when none is.
	FindCurrentActive(ctx context.Context, at time.Time) (*RateBase, error)
}
