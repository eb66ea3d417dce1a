package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/fishledger/internal/domain/entity"
)

// IdempotencyRepository stores replayable responses keyed by client key and owner
type IdempotencyRepository interface {
	GetByKey(ctx context.Context, key string, ownerID uuid.UUID) (*entity.IdempotencyKey, error)
	// Reserve inserts ikey unless its owner already holds the key, and
	// reports whether this call took it
	Reserve(ctx context.Context, ikey *entity.IdempotencyKey) (bool, error)
	// Complete stores the response of a reserved key
	Complete(ctx context.Context, ikey *entity.IdempotencyKey) error
	// Release drops a reservation so the key can be used again
	Release(ctx context.Context, ikey *entity.IdempotencyKey) error
	// DeleteExpired removes keys that expired before now
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
