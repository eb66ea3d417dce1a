package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/fishledger/internal/domain/entity"
	"github.com/sangkips/fishledger/internal/domain/repository"
	"github.com/sangkips/fishledger/pkg/pagination"
)

// AuditService reads the audit trail
type AuditService struct {
	logs repository.ActionLogRepository
}

// NewAuditService creates a new audit service
func NewAuditService(logs repository.ActionLogRepository) *AuditService {
	return &AuditService{logs: logs}
}

// ListActionLogs returns the owner's audit entries, newest first
func (s *AuditService) ListActionLogs(ctx context.Context, ownerID uuid.UUID, params *repository.ActionLogFilterParams) (*pagination.PaginatedResult[entity.ActionLog], error) {
	if params == nil {
		params = &repository.ActionLogFilterParams{}
	}
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	logs, total, err := s.logs.List(ctx, ownerID, params)
	if err != nil {
		return nil, err
	}

	p := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(logs, p), nil
}
