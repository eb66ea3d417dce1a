package entity

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/fishledger/internal/domain/enum"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActionLog is an append-only audit record of an edit or deletion of a sale.
// SaleData holds the full sale exactly as it was before the action.
type ActionLog struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_action_logs_owner_created,priority:1" json:"owner_id"`
	ActionType enum.ActionType `gorm:"size:20;not null" json:"action_type"`
	Motif      string          `gorm:"type:text;not null" json:"motif"`
	SaleID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_id"`
	SaleData   datatypes.JSON  `json:"sale_data"`
	CreatedAt  time.Time       `gorm:"not null;index:idx_action_logs_owner_created,priority:2" json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new action log
func (a *ActionLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ActionLog model
func (ActionLog) TableName() string {
	return "action_logs"
}

// NewActionLog records action on sale, snapshotting the sale as it is now.
func NewActionLog(action enum.ActionType, sale *Sale, motif string, at time.Time) (*ActionLog, error) {
	data, err := sale.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("snapshot sale %s: %w", sale.ID, err)
	}
	return &ActionLog{
		OwnerID:    sale.OwnerID,
		ActionType: action,
		Motif:      motif,
		SaleID:     sale.ID,
		SaleData:   datatypes.JSON(data),
		CreatedAt:  at,
	}, nil
}

// PriorSale decodes the snapshot stored in SaleData.
func (a *ActionLog) PriorSale() (*Sale, error) {
	var sale Sale
	if err := json.Unmarshal(a.SaleData, &sale); err != nil {
		return nil, fmt.Errorf("decode sale snapshot: %w", err)
	}
	return &sale, nil
}
