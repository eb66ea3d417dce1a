package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateSaleRequest represents a sale creation request.
// Amounts accept JSON numbers or strings. Dates, here and in every filter,
// are YYYY-MM-DD or RFC 3339.
type CreateSaleRequest struct {
	Date        string           `json:"date"`
	ClientName  string           `json:"client_name" binding:"required,max=255"`
	ProductType string           `json:"product_type" binding:"required,max=50"`
	Quantity    *decimal.Decimal `json:"quantity" binding:"required"`
	Delivered   *decimal.Decimal `json:"delivered"`
	UnitPrice   *decimal.Decimal `json:"unit_price" binding:"required"`
	Payment     *decimal.Decimal `json:"payment"`
	Observation string           `json:"observation"`
}

// EditSaleRequest replaces the provided fields of a sale. Motif is mandatory.
type EditSaleRequest struct {
	Date        string           `json:"date"`
	ClientName  *string          `json:"client_name" binding:"omitempty,max=255"`
	ProductType *string          `json:"product_type" binding:"omitempty,max=50"`
	Quantity    *decimal.Decimal `json:"quantity"`
	Delivered   *decimal.Decimal `json:"delivered"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	Payment     *decimal.Decimal `json:"payment"`
	Observation *string          `json:"observation"`
	Motif       string           `json:"motif"`
}

// DeleteSaleRequest carries the reason for a deletion
type DeleteSaleRequest struct {
	Motif string `json:"motif"`
}

// AmountRequest is the body of pay and refund
type AmountRequest struct {
	Amount *decimal.Decimal `json:"amount" binding:"required"`
}

// DeliverRequest is the body of deliver
type DeliverRequest struct {
	Quantity *decimal.Decimal `json:"quantity" binding:"required"`
}

// CompensationRequest moves credit from one sale onto the debt of another
type CompensationRequest struct {
	DebtID   uuid.UUID        `json:"debt_id" binding:"required"`
	CreditID uuid.UUID        `json:"credit_id" binding:"required"`
	Amount   *decimal.Decimal `json:"amount" binding:"required"`
}

// SaleFilterRequest represents sale filter parameters
type SaleFilterRequest struct {
	ProductType string `form:"product_type"`
	Client      string `form:"client"`
	Settled     string `form:"settled"`
	Balance     string `form:"balance"`
	StartDate   string `form:"start_date"`
	EndDate     string `form:"end_date"`
	SortBy      string `form:"sort_by"`
	SortOrder   string `form:"sort_order"`
	Page        int    `form:"page"`
	PerPage     int    `form:"per_page"`
}

// ActionLogFilterRequest represents audit trail filter parameters
type ActionLogFilterRequest struct {
	StartDate  string `form:"start_date"`
	EndDate    string `form:"end_date"`
	ActionType string `form:"action_type"`
	SaleID     string `form:"sale_id"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}
