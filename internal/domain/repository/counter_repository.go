package repository

import "context"

// CounterRepository allocates values from named sequences. NextValue must be
// a single atomic store operation.
type CounterRepository interface {
	NextValue(ctx context.Context, name string) (int64, error)
	Initialize(ctx context.Context, name string) error
}
