package shift

import "context"

type ShiftRepository interface {
	// GetByID retrieves a shift policy by ID.
	GetByID(ctx context.Context, id string) (Shift, error)

	// GetByIDs retrieves a batch of shift policies keyed by ID.
	GetByIDs(ctx context.Context, ids []string) (map[string]Shift, error)
}
