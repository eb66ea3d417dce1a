package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/fishledger/internal/domain/entity"
	"github.com/sangkips/fishledger/internal/domain/enum"
	domainRepo "github.com/sangkips/fishledger/internal/domain/repository"
	"github.com/sangkips/fishledger/pkg/pagination"
	"gorm.io/gorm"
)

var saleSortColumns = map[string]string{
	"date":        "date",
	"client_name": "client_name",
	"amount":      "amount",
	"balance":     "balance",
	"created_at":  "created_at",
}

// decimal columns sort by value, not by their stored text
var saleDecimalColumns = map[string]bool{
	"amount":  true,
	"balance": true,
}

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	sale.Recompute()
	sale.Date = sale.Date.UTC()
	sale.Version = 1
	return r.db.WithContext(ctx).Create(sale).Error
}

func (r *saleRepository) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Scopes(OwnerScope(ownerID)).
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepository) Update(ctx context.Context, sale *entity.Sale) error {
	sale.Recompute()
	now := r.db.NowFunc()

	// A map is used so zero values (payment back to 0, settled false) are written.
	res := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Scopes(OwnerScope(sale.OwnerID)).
		Where("id = ? AND version = ?", sale.ID, sale.Version).
		Updates(map[string]interface{}{
			"date":         sale.Date.UTC(),
			"client_name":  sale.ClientName,
			"product_type": sale.ProductType,
			"quantity":     sale.Quantity,
			"delivered":    sale.Delivered,
			"unit_price":   sale.UnitPrice,
			"amount":       sale.Amount,
			"payment":      sale.Payment,
			"balance":      sale.Balance,
			"settled":      sale.Settled,
			"observation":  sale.Observation,
			"version":      sale.Version + 1,
			"updated_at":   now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainRepo.ErrStaleRecord
	}
	sale.Version++
	sale.UpdatedAt = now
	return nil
}

func (r *saleRepository) Delete(ctx context.Context, sale *entity.Sale) error {
	res := r.db.WithContext(ctx).
		Scopes(OwnerScope(sale.OwnerID)).
		Where("id = ? AND version = ?", sale.ID, sale.Version).
		Delete(&entity.Sale{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainRepo.ErrStaleRecord
	}
	return nil
}

func (r *saleRepository) List(ctx context.Context, ownerID uuid.UUID, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	if params == nil {
		params = &domainRepo.SaleFilterParams{}
	}
	if params.Pagination == nil {
		params.Pagination = &pagination.PaginationParams{}
	}

	query := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Scopes(OwnerScope(ownerID), BetweenScope("date", params.StartDate, params.EndDate))

	if params.ProductType != nil {
		query = query.Where("product_type = ?", *params.ProductType)
	}

	if params.ClientName != "" {
		query = query.Where(`LOWER(client_name) LIKE ? ESCAPE '\'`, containsPattern(strings.ToLower(params.ClientName)))
	}

	if params.Settled != nil {
		query = query.Where("settled = ?", *params.Settled)
	}

	if params.BalanceSign != nil {
		balance := numericColumn(r.db, "balance")
		switch *params.BalanceSign {
		case enum.BalanceSignDebt:
			query = query.Where(balance + " > 0")
		case enum.BalanceSignCredit:
			query = query.Where(balance + " < 0")
		case enum.BalanceSignZero:
			query = query.Where(balance + " = 0")
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting
	sortBy := "date"
	sortOrder := "DESC"
	if col, ok := saleSortColumns[params.SortBy]; ok {
		sortBy = col
		if saleDecimalColumns[col] {
			sortBy = numericColumn(r.db, col)
		}
	}
	if strings.EqualFold(params.SortOrder, "asc") {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(sortBy + " " + sortOrder).
		Order("id ASC").
		Find(&sales).Error

	return sales, total, err
}
