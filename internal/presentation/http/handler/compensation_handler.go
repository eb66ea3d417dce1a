package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/fishledger/internal/application/service"
	"github.com/sangkips/fishledger/internal/presentation/http/dto/request"
	"github.com/sangkips/fishledger/internal/presentation/http/dto/response"
)

// CompensationHandler handles compensation requests
type CompensationHandler struct {
	compensationService *service.CompensationService
}

// NewCompensationHandler creates a new compensation handler
func NewCompensationHandler(compensationService *service.CompensationService) *CompensationHandler {
	return &CompensationHandler{compensationService: compensationService}
}

// Compensate handles moving credit from one sale onto the debt of another
func (h *CompensationHandler) Compensate(c *gin.Context) {
	ownerID := GetOwnerID(c)
	if ownerID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CompensationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	result, err := h.compensationService.Compensate(c.Request.Context(), *ownerID, req.DebtID, req.CreditID, *req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Compensation applied successfully", result)
}
