package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/fishledger/internal/application/service"
	"github.com/sangkips/fishledger/internal/domain/enum"
	"github.com/sangkips/fishledger/internal/domain/repository"
	"github.com/sangkips/fishledger/internal/presentation/http/dto/request"
	"github.com/sangkips/fishledger/internal/presentation/http/dto/response"
	"github.com/sangkips/fishledger/pkg/apperror"
	"github.com/sangkips/fishledger/pkg/pagination"
)

// AuditHandler serves the audit trail
type AuditHandler struct {
	auditService *service.AuditService
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(auditService *service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// List handles listing action logs
func (h *AuditHandler) List(c *gin.Context) {
	ownerID := GetOwnerID(c)
	if ownerID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.ActionLogFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	params := &repository.ActionLogFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    req.Page,
			PerPage: req.PerPage,
		},
	}

	if req.ActionType != "" {
		actionType, err := enum.ParseActionType(req.ActionType)
		if err != nil {
			response.Error(c, apperror.NewFieldValidationError("action_type", "Expected edit or delete"))
			return
		}
		params.ActionType = &actionType
	}

	if req.SaleID != "" {
		saleID, err := uuid.Parse(req.SaleID)
		if err != nil {
			response.Error(c, apperror.NewFieldValidationError("sale_id", "Invalid sale id"))
			return
		}
		params.SaleID = &saleID
	}

	var err error
	if params.StartDate, err = parseDate(req.StartDate, "start_date", false); err != nil {
		response.Error(c, err)
		return
	}
	if params.EndDate, err = parseDate(req.EndDate, "end_date", true); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.auditService.ListActionLogs(c.Request.Context(), *ownerID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Action logs retrieved successfully", result)
}
