package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/fishledger/internal/domain/enum"
	"github.com/sangkips/fishledger/internal/domain/ledger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sale is one ledger entry: an ordered fish sale with its delivery and
// payment state. Amount, Balance and Settled are derived; call Recompute
// before every write.
type Sale struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID     uuid.UUID        `gorm:"type:uuid;not null;index:idx_sales_owner_date,priority:1;index:idx_sales_owner_client,priority:1" json:"owner_id"`
	Date        time.Time        `gorm:"not null;index:idx_sales_owner_date,priority:2" json:"date"`
	ClientName  string           `gorm:"size:255;not null;index:idx_sales_owner_client,priority:2" json:"client_name"`
	ProductType enum.ProductType `gorm:"size:50;not null;index" json:"product_type"`
	Quantity    decimal.Decimal  `gorm:"type:numeric;not null" json:"quantity"`
	Delivered   decimal.Decimal  `gorm:"type:numeric;not null" json:"delivered"`
	UnitPrice   decimal.Decimal  `gorm:"type:numeric;not null" json:"unit_price"`
	Amount      decimal.Decimal  `gorm:"type:numeric;not null" json:"amount"`
	Payment     decimal.Decimal  `gorm:"type:numeric;not null" json:"payment"`
	Balance     decimal.Decimal  `gorm:"type:numeric;not null;index" json:"balance"`
	Settled     bool             `gorm:"not null;index" json:"settled"`
	Observation string           `gorm:"type:text" json:"observation"`
	Version     int64            `gorm:"not null" json:"version"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// Recompute refreshes the derived fields from the current inputs.
func (s *Sale) Recompute() {
	derived := ledger.Derive(ledger.Inputs{
		Quantity:  s.Quantity,
		Delivered: s.Delivered,
		UnitPrice: s.UnitPrice,
		Payment:   s.Payment,
	})
	s.Delivered = derived.Delivered
	s.Amount = derived.Amount
	s.Balance = derived.Balance
	s.Settled = derived.Settled
}

// IsDebt reports whether the client owes money on this sale.
func (s *Sale) IsDebt() bool {
	return s.Balance.IsPositive()
}

// IsCredit reports whether the company owes the client on this sale.
func (s *Sale) IsCredit() bool {
	return s.Balance.IsNegative()
}

// Snapshot serializes the sale as it is now, for the audit trail.
func (s *Sale) Snapshot() ([]byte, error) {
	return json.Marshal(s)
}
