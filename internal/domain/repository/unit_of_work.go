package repository

import (
	"context"
	"errors"
)

// ErrStaleRecord is returned when a write finds the stored version no longer
// matches the version that was read.
var ErrStaleRecord = errors.New("record was modified concurrently")

// Repositories groups the stores bound to one unit of work.
type Repositories struct {
	Sales      SaleRepository
	ActionLogs ActionLogRepository
}

// UnitOfWork runs fn atomically. If fn returns an error every write made
// through repos is discarded.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(repos Repositories) error) error
}
