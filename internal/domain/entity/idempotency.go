package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// IdempotencyKeyTTL is how long a stored response may be replayed
	IdempotencyKeyTTL = 24 * time.Hour
	// IdempotencyReservationTTL bounds how long an unfinished request holds its key
	IdempotencyReservationTTL = 5 * time.Minute
)

// IdempotencyKey stores the response of a processed POST so a retried
// request with the same key replays it instead of applying it twice.
// A row with no response code is a reservation held by a request in flight.
type IdempotencyKey struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Key          string    `gorm:"uniqueIndex:idx_idempotency_owner_key,priority:2;size:255;not null"`
	OwnerID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_idempotency_owner_key,priority:1"`
	Endpoint     string    `gorm:"size:255;not null"` // e.g. "POST /api/v1/sales/:id/pay"
	RequestHash  string    `gorm:"size:64"`           // SHA256 of the request body
	ResponseCode int       `gorm:"not null;default:0"`
	ResponseBody string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	ExpiresAt    time.Time `gorm:"not null;index"`
}

// BeforeCreate generates a UUID before creating a new key
func (i *IdempotencyKey) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for IdempotencyKey
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsExpired reports whether the key can no longer be replayed at now
func (i *IdempotencyKey) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// IsPending reports whether the request holding the key has not finished
func (i *IdempotencyKey) IsPending() bool {
	return i.ResponseCode == 0
}
