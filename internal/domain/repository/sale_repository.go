package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/fishledger/internal/domain/entity"
	"github.com/sangkips/fishledger/internal/domain/enum"
	"github.com/sangkips/fishledger/pkg/pagination"
)

// SaleRepository defines the interface for sale data operations.
// Every method is scoped to one owner; a sale belonging to another owner
// behaves as if it did not exist.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*entity.Sale, error)
	// Update persists sale if its version still matches the stored row and
	// bumps the version. Returns ErrStaleRecord otherwise.
	Update(ctx context.Context, sale *entity.Sale) error
	// Delete removes sale under the same version check as Update.
	Delete(ctx context.Context, sale *entity.Sale) error
	List(ctx context.Context, ownerID uuid.UUID, params *SaleFilterParams) ([]entity.Sale, int64, error)
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination  *pagination.PaginationParams
	ProductType *enum.ProductType
	ClientName  string // case-insensitive substring
	Settled     *bool
	BalanceSign *enum.BalanceSign
	StartDate   *time.Time
	EndDate     *time.Time
	SortBy      string
	SortOrder   string
}
