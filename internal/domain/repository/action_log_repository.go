package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/fishledger/internal/domain/entity"
	"github.com/sangkips/fishledger/internal/domain/enum"
	"github.com/sangkips/fishledger/pkg/pagination"
)

// ActionLogRepository is append-only: rows are never updated or removed.
type ActionLogRepository interface {
	Create(ctx context.Context, log *entity.ActionLog) error
	List(ctx context.Context, ownerID uuid.UUID, params *ActionLogFilterParams) ([]entity.ActionLog, int64, error)
}

// ActionLogFilterParams contains filtering parameters for audit queries
type ActionLogFilterParams struct {
	Pagination *pagination.PaginationParams
	StartDate  *time.Time
	EndDate    *time.Time
	ActionType *enum.ActionType
	SaleID     *uuid.UUID
}
