package branch

import "context"

type BranchRepository interface {
	// GetByID returns ErrBranchNotFound when no row matches.
	GetByID(ctx context.Context, id uint) (*Branch, error)
}
