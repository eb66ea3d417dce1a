package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/fishledger/internal/domain/entity"
	"github.com/sangkips/fishledger/internal/domain/enum"
	"github.com/sangkips/fishledger/internal/domain/repository"
	"github.com/sangkips/fishledger/pkg/apperror"
	"github.com/sangkips/fishledger/pkg/clock"
	"github.com/sangkips/fishledger/pkg/pagination"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const maxClientNameLength = 255

// SaleService handles sale records and the audited corrections made to them
type SaleService struct {
	tx    ledgerTx
	sales repository.SaleRepository
	clock clock.Clock
	log   *zap.Logger
}

// NewSaleService creates a new sale service
func NewSaleService(
	uow repository.UnitOfWork,
	sales repository.SaleRepository,
	clk clock.Clock,
	maxRetries int,
	log *zap.Logger,
) *SaleService {
	return &SaleService{
		tx:    newLedgerTx(uow, maxRetries, log),
		sales: sales,
		clock: clk,
		log:   log,
	}
}

// CreateSaleInput represents the create sale input
type CreateSaleInput struct {
	Date        *time.Time
	ClientName  string
	ProductType string
	Quantity    decimal.Decimal
	Delivered   *decimal.Decimal
	UnitPrice   decimal.Decimal
	Payment     *decimal.Decimal
	Observation string
}

// SaleFields carries the fields an edit replaces. Nil means unchanged.
type SaleFields struct {
	Date        *time.Time
	ClientName  *string
	ProductType *string
	Quantity    *decimal.Decimal
	Delivered   *decimal.Decimal
	UnitPrice   *decimal.Decimal
	Payment     *decimal.Decimal
	Observation *string
}

// CreateSale records a new sale
func (s *SaleService) CreateSale(ctx context.Context, ownerID uuid.UUID, input *CreateSaleInput) (*entity.Sale, error) {
	sale := &entity.Sale{
		OwnerID:     ownerID,
		Quantity:    input.Quantity,
		UnitPrice:   input.UnitPrice,
		Observation: strings.TrimSpace(input.Observation),
	}
	if input.Date != nil {
		sale.Date = input.Date.UTC()
	} else {
		sale.Date = s.clock.Now().UTC()
	}
	if input.Delivered != nil {
		sale.Delivered = *input.Delivered
	}
	if input.Payment != nil {
		sale.Payment = *input.Payment
	}

	var fieldErrors []apperror.FieldError
	sale.ClientName, fieldErrors = validateClientName(input.ClientName, fieldErrors)
	sale.ProductType, fieldErrors = validateProductType(input.ProductType, fieldErrors)
	fieldErrors = validateAmounts(sale, fieldErrors)
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	err := s.tx.uow.Do(ctx, func(repos repository.Repositories) error {
		return repos.Sales.Create(ctx, sale)
	})
	if err != nil {
		return nil, fmt.Errorf("create sale: %w", err)
	}

	s.log.Info("sale created",
		zap.Stringer("owner_id", ownerID),
		zap.Stringer("sale_id", sale.ID),
		zap.Stringer("amount", sale.Amount),
		zap.Stringer("balance", sale.Balance),
	)
	return sale, nil
}

// GetSale retrieves a sale by ID
func (s *SaleService) GetSale(ctx context.Context, ownerID, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.sales.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales retrieves sales with filtering and pagination
func (s *SaleService) ListSales(ctx context.Context, ownerID uuid.UUID, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	if params == nil {
		params = &repository.SaleFilterParams{}
	}
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	sales, total, err := s.sales.List(ctx, ownerID, params)
	if err != nil {
		return nil, err
	}

	p := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, p), nil
}

// ProductTypes lists the built-in product type tags
func (s *SaleService) ProductTypes() []enum.ProductType {
	return enum.DefaultProductTypes()
}

// EditSale replaces fields of a sale and records the prior state in the audit
// trail, in one transaction.
func (s *SaleService) EditSale(ctx context.Context, ownerID, id uuid.UUID, fields *SaleFields, motif string) (*entity.Sale, error) {
	motif, err := requireMotif(motif)
	if err != nil {
		return nil, err
	}
	if fields == nil {
		fields = &SaleFields{}
	}
	if err := validateFields(fields); err != nil {
		return nil, err
	}

	var result *entity.Sale
	err = s.tx.run(ctx, "edit", func(repos repository.Repositories) error {
		sale, err := repos.Sales.GetByID(ctx, ownerID, id)
		if err != nil {
			return err
		}
		if sale == nil {
			return apperror.NewNotFoundError("Sale")
		}

		log, err := entity.NewActionLog(enum.ActionTypeEdit, sale, motif, s.clock.Now())
		if err != nil {
			return err
		}
		if err := repos.ActionLogs.Create(ctx, log); err != nil {
			return err
		}

		applyFields(sale, fields)
		if err := repos.Sales.Update(ctx, sale); err != nil {
			return err
		}
		result = sale
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("sale edited",
		zap.Stringer("owner_id", ownerID),
		zap.Stringer("sale_id", id),
		zap.String("motif", motif),
	)
	return result, nil
}

// DeleteSale removes a sale after recording it in the audit trail, in one transaction.
func (s *SaleService) DeleteSale(ctx context.Context, ownerID, id uuid.UUID, motif string) error {
	motif, err := requireMotif(motif)
	if err != nil {
		return err
	}

	err = s.tx.run(ctx, "delete", func(repos repository.Repositories) error {
		sale, err := repos.Sales.GetByID(ctx, ownerID, id)
		if err != nil {
			return err
		}
		if sale == nil {
			return apperror.NewNotFoundError("Sale")
		}

		log, err := entity.NewActionLog(enum.ActionTypeDelete, sale, motif, s.clock.Now())
		if err != nil {
			return err
		}
		if err := repos.ActionLogs.Create(ctx, log); err != nil {
			return err
		}
		return repos.Sales.Delete(ctx, sale)
	})
	if err != nil {
		return err
	}

	s.log.Info("sale deleted",
		zap.Stringer("owner_id", ownerID),
		zap.Stringer("sale_id", id),
		zap.String("motif", motif),
	)
	return nil
}

func requireMotif(motif string) (string, error) {
	motif = strings.TrimSpace(motif)
	if motif == "" {
		return "", apperror.NewFieldValidationError("motif", "A reason is required")
	}
	return motif, nil
}

func validateClientName(raw string, errs []apperror.FieldError) (string, []apperror.FieldError) {
	name := strings.TrimSpace(raw)
	switch {
	case name == "":
		errs = append(errs, apperror.FieldError{Field: "client_name", Message: "Client name is required"})
	case len(name) > maxClientNameLength:
		errs = append(errs, apperror.FieldError{Field: "client_name", Message: fmt.Sprintf("Client name must be at most %d characters", maxClientNameLength)})
	}
	return name, errs
}

func validateProductType(raw string, errs []apperror.FieldError) (enum.ProductType, []apperror.FieldError) {
	pt, err := enum.ParseProductType(raw)
	if err != nil {
		errs = append(errs, apperror.FieldError{Field: "product_type", Message: err.Error()})
	}
	return pt, errs
}

func validateAmounts(sale *entity.Sale, errs []apperror.FieldError) []apperror.FieldError {
	if sale.Quantity.IsNegative() {
		errs = append(errs, apperror.FieldError{Field: "quantity", Message: "Quantity cannot be negative"})
	}
	if sale.UnitPrice.IsNegative() {
		errs = append(errs, apperror.FieldError{Field: "unit_price", Message: "Unit price cannot be negative"})
	}
	if sale.Payment.IsNegative() {
		errs = append(errs, apperror.FieldError{Field: "payment", Message: "Payment cannot be negative"})
	}
	return errs
}

// validateFields checks every provided field and normalizes the text ones in place.
func validateFields(fields *SaleFields) error {
	var errs []apperror.FieldError
	if fields.ClientName != nil {
		var name string
		name, errs = validateClientName(*fields.ClientName, errs)
		fields.ClientName = &name
	}
	if fields.ProductType != nil {
		var pt enum.ProductType
		pt, errs = validateProductType(*fields.ProductType, errs)
		normalized := pt.String()
		fields.ProductType = &normalized
	}

	candidate := &entity.Sale{}
	if fields.Quantity != nil {
		candidate.Quantity = *fields.Quantity
	}
	if fields.UnitPrice != nil {
		candidate.UnitPrice = *fields.UnitPrice
	}
	if fields.Payment != nil {
		candidate.Payment = *fields.Payment
	}
	errs = validateAmounts(candidate, errs)

	if len(errs) > 0 {
		return apperror.NewValidationError(errs)
	}
	return nil
}

func applyFields(sale *entity.Sale, fields *SaleFields) {
	if fields.Date != nil {
		sale.Date = fields.Date.UTC()
	}
	if fields.ClientName != nil {
		sale.ClientName = *fields.ClientName
	}
	if fields.ProductType != nil {
		sale.ProductType = enum.ProductType(*fields.ProductType)
	}
	if fields.Quantity != nil {
		sale.Quantity = *fields.Quantity
	}
	if fields.Delivered != nil {
		sale.Delivered = *fields.Delivered
	}
	if fields.UnitPrice != nil {
		sale.UnitPrice = *fields.UnitPrice
	}
	if fields.Payment != nil {
		sale.Payment = *fields.Payment
	}
	if fields.Observation != nil {
		sale.Observation = strings.TrimSpace(*fields.Observation)
	}
}
