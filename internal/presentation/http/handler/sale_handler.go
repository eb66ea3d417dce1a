package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/fishledger/internal/application/service"
	"github.com/sangkips/fishledger/internal/domain/enum"
	"github.com/sangkips/fishledger/internal/domain/repository"
	"github.com/sangkips/fishledger/internal/presentation/http/dto/request"
	"github.com/sangkips/fishledger/internal/presentation/http/dto/response"
	"github.com/sangkips/fishledger/pkg/apperror"
	"github.com/sangkips/fishledger/pkg/pagination"
	"github.com/shopspring/decimal"
)

// SaleHandler handles sale-related HTTP requests
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// ProductTypes lists the built-in product type tags
func (h *SaleHandler) ProductTypes(c *gin.Context) {
	response.OK(c, "Product types retrieved successfully", h.saleService.ProductTypes())
}

// List handles listing sales
func (h *SaleHandler) List(c *gin.Context) {
	ownerID := GetOwnerID(c)
	if ownerID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.SaleFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	params := &repository.SaleFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    req.Page,
			PerPage: req.PerPage,
		},
		ClientName: req.Client,
		SortBy:     req.SortBy,
		SortOrder:  req.SortOrder,
	}

	var fieldErrors []apperror.FieldError
	if req.ProductType != "" {
		pt, err := enum.ParseProductType(req.ProductType)
		if err != nil {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "product_type", Message: err.Error()})
		} else {
			params.ProductType = &pt
		}
	}
	if req.Settled != "" {
		settled, err := strconv.ParseBool(req.Settled)
		if err != nil {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "settled", Message: "Expected true or false"})
		} else {
			params.Settled = &settled
		}
	}
	if req.Balance != "" {
		sign, err := enum.ParseBalanceSign(req.Balance)
		if err != nil {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "balance", Message: "Expected debt, credit or zero"})
		} else {
			params.BalanceSign = &sign
		}
	}
	if len(fieldErrors) > 0 {
		response.ValidationError(c, fieldErrors)
		return
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

	result, err := h.saleService.ListSales(c.Request.Context(), *ownerID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

// Get handles retrieving a single sale
func (h *SaleHandler) Get(c *gin.Context) {
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

	sale, err := h.saleService.GetSale(c.Request.Context(), *ownerID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// Create handles recording a new sale
func (h *SaleHandler) Create(c *gin.Context) {
	ownerID := GetOwnerID(c)
	if ownerID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}
	date, err := parseDate(req.Date, "date", false)
	if err != nil {
		response.Error(c, err)
		return
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), *ownerID, &service.CreateSaleInput{
		Date:        date,
		ClientName:  req.ClientName,
		ProductType: req.ProductType,
		Quantity:    valueOrZero(req.Quantity),
		Delivered:   req.Delivered,
		UnitPrice:   valueOrZero(req.UnitPrice),
		Payment:     req.Payment,
		Observation: req.Observation,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale created successfully", sale)
}

// Edit handles an audited correction of a sale
func (h *SaleHandler) Edit(c *gin.Context) {
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

	var req request.EditSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}
	date, err := parseDate(req.Date, "date", false)
	if err != nil {
		response.Error(c, err)
		return
	}

	sale, err := h.saleService.EditSale(c.Request.Context(), *ownerID, id, &service.SaleFields{
		Date:        date,
		ClientName:  req.ClientName,
		ProductType: req.ProductType,
		Quantity:    req.Quantity,
		Delivered:   req.Delivered,
		UnitPrice:   req.UnitPrice,
		Payment:     req.Payment,
		Observation: req.Observation,
	}, req.Motif)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale updated successfully", sale)
}

// Delete handles an audited deletion. The motif comes from the body or the
// motif query parameter.
func (h *SaleHandler) Delete(c *gin.Context) {
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

	motif := c.Query("motif")
	if motif == "" && c.Request.ContentLength != 0 {
		var req request.DeleteSaleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, bindError(err))
			return
		}
		motif = req.Motif
	}

	if err := h.saleService.DeleteSale(c.Request.Context(), *ownerID, id, motif); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale deleted successfully", gin.H{"id": id, "deleted": true})
}

func valueOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
