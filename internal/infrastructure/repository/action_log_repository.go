package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/fishledger/internal/domain/entity"
	domainRepo "github.com/sangkips/fishledger/internal/domain/repository"
	"github.com/sangkips/fishledger/pkg/pagination"
	"gorm.io/gorm"
)

type actionLogRepository struct {
	db *gorm.DB
}

// NewActionLogRepository creates a new action log repository
func NewActionLogRepository(db *gorm.DB) domainRepo.ActionLogRepository {
	return &actionLogRepository{db: db}
}

func (r *actionLogRepository) Create(ctx context.Context, log *entity.ActionLog) error {
	log.CreatedAt = log.CreatedAt.UTC()
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *actionLogRepository) List(ctx context.Context, ownerID uuid.UUID, params *domainRepo.ActionLogFilterParams) ([]entity.ActionLog, int64, error) {
	var logs []entity.ActionLog
	var total int64

	if params == nil {
		params = &domainRepo.ActionLogFilterParams{}
	}
	if params.Pagination == nil {
		params.Pagination = &pagination.PaginationParams{}
	}

	query := r.db.WithContext(ctx).Model(&entity.ActionLog{}).
		Scopes(OwnerScope(ownerID), BetweenScope("created_at", params.StartDate, params.EndDate))

	if params.ActionType != nil {
		query = query.Where("action_type = ?", *params.ActionType)
	}

	if params.SaleID != nil {
		query = query.Where("sale_id = ?", *params.SaleID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("created_at DESC").
		Order("id ASC").
		Find(&logs).Error

	return logs, total, err
}
