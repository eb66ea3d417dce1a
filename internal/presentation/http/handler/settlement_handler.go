package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/fishledger/internal/application/service"
	"github.com/sangkips/fishledger/internal/presentation/http/dto/request"
	"github.com/sangkips/fishledger/internal/presentation/http/dto/response"
)

// SettlementHandler handles payment, refund and delivery requests
type SettlementHandler struct {
	settlementService *service.SettlementService
}

// NewSettlementHandler creates a new settlement handler
func NewSettlementHandler(settlementService *service.SettlementService) *SettlementHandler {
	return &SettlementHandler{settlementService: settlementService}
}

// Pay handles adding a payment to a sale
func (h *SettlementHandler) Pay(c *gin.Context) {
	ownerID := GetOwnerID(c)
	if ownerID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	sale, err := h.settlementService.Pay(c.Request.Context(), *ownerID, id, *req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment recorded successfully", sale)
}

// Refund handles giving back part of a credit surplus
func (h *SettlementHandler) Refund(c *gin.Context) {
	ownerID := GetOwnerID(c)
	if ownerID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	sale, err := h.settlementService.Refund(c.Request.Context(), *ownerID, id, *req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Refund recorded successfully", sale)
}

// Settle handles paying off the outstanding amount of a sale
func (h *SettlementHandler) Settle(c *gin.Context) {
	ownerID := GetOwnerID(c)
	if ownerID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	sale, err := h.settlementService.SettleAll(c.Request.Context(), *ownerID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale settled successfully", sale)
}

// Deliver handles recording a delivery
func (h *SettlementHandler) Deliver(c *gin.Context) {
	ownerID := GetOwnerID(c)
	if ownerID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.DeliverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	sale, err := h.settlementService.Deliver(c.Request.Context(), *ownerID, id, *req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Delivery recorded successfully", sale)
}
