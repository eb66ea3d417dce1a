package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/fishledger/internal/domain/entity"
	"github.com/sangkips/fishledger/internal/domain/repository"
	infraRepo "github.com/sangkips/fishledger/internal/infrastructure/repository"
	"github.com/sangkips/fishledger/internal/testutil"
	"github.com/sangkips/fishledger/pkg/clock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

var testNow = time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)

type fixture struct {
	db           *gorm.DB
	uow          repository.UnitOfWork
	clock        *clock.Fixed
	sales        *SaleService
	settlement   *SettlementService
	compensation *CompensationService
	audit        *AuditService
	owner        uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clk := clock.NewFixed(testNow)
	db := testutil.NewDBWithClock(t, clk)
	return buildFixture(t, db, infraRepo.NewUnitOfWork(db), clk)
}

func newFixtureWithUoW(t *testing.T, db *gorm.DB, uow repository.UnitOfWork) *fixture {
	t.Helper()
	return buildFixture(t, db, uow, clock.NewFixed(testNow))
}

func buildFixture(t *testing.T, db *gorm.DB, uow repository.UnitOfWork, clk *clock.Fixed) *fixture {
	t.Helper()
	log := zaptest.NewLogger(t)
	return &fixture{
		db:           db,
		uow:          uow,
		clock:        clk,
		sales:        NewSaleService(uow, infraRepo.NewSaleRepository(db), clk, 3, log),
		settlement:   NewSettlementService(uow, 3, log),
		compensation: NewCompensationService(uow, 3, log),
		audit:        NewAuditService(infraRepo.NewActionLogRepository(db)),
		owner:        uuid.New(),
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

// mustCreate records a fresh sale for the fixture owner.
func (f *fixture) mustCreate(t *testing.T, qty, price, payment string) *entity.Sale {
	t.Helper()
	sale, err := f.sales.CreateSale(context.Background(), f.owner, &CreateSaleInput{
		ClientName:  "Awa",
		ProductType: "fresh",
		Quantity:    dec(qty),
		UnitPrice:   dec(price),
		Payment:     decPtr(payment),
	})
	require.NoError(t, err)
	return sale
}

func (f *fixture) reload(t *testing.T, id uuid.UUID) *entity.Sale {
	t.Helper()
	sale, err := infraRepo.NewSaleRepository(f.db).GetByID(context.Background(), f.owner, id)
	require.NoError(t, err)
	return sale
}

func (f *fixture) countLogs(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&entity.ActionLog{}).Count(&n).Error)
	return n
}

// assertConsistent checks the derived fields of a stored sale.
func assertConsistent(t *testing.T, s *entity.Sale) {
	t.Helper()
	amount := s.Quantity.Mul(s.UnitPrice)
	assert.True(t, amount.Equal(s.Amount), "amount %s != %s", s.Amount, amount)
	assert.True(t, amount.Sub(s.Payment).Round(2).Equal(s.Balance), "balance %s", s.Balance)
	assert.Equal(t, amount.IsPositive() && !s.Balance.IsPositive(), s.Settled)
	assert.False(t, s.Delivered.IsNegative())
	assert.False(t, s.Delivered.GreaterThan(s.Quantity))
}

// flakyUnitOfWork runs each unit of work for real, then reports a lost
// version check for the first failures attempts so the writes roll back.
type flakyUnitOfWork struct {
	inner    repository.UnitOfWork
	failures int
	calls    int
}

func (f *flakyUnitOfWork) Do(ctx context.Context, fn func(repos repository.Repositories) error) error {
	f.calls++
	call := f.calls
	return f.inner.Do(ctx, func(repos repository.Repositories) error {
		if err := fn(repos); err != nil {
			return err
		}
		if call <= f.failures {
			return repository.ErrStaleRecord
		}
		return nil
	})
}

var errDiskFull = errors.New("disk full")

// failingSales fails the failOn-th Update call, and every Delete when
// failDelete is set.
type failingSales struct {
	repository.SaleRepository
	failOn     int
	updates    int
	failDelete bool
}

func (f *failingSales) Update(ctx context.Context, sale *entity.Sale) error {
	f.updates++
	if f.updates == f.failOn {
		return errDiskFull
	}
	return f.SaleRepository.Update(ctx, sale)
}

func (f *failingSales) Delete(ctx context.Context, sale *entity.Sale) error {
	if f.failDelete {
		return errDiskFull
	}
	return f.SaleRepository.Delete(ctx, sale)
}

// staleDeletes loses the version check on every Delete.
type staleDeletes struct {
	repository.SaleRepository
}

func (staleDeletes) Delete(context.Context, *entity.Sale) error {
	return repository.ErrStaleRecord
}

type wrappingUnitOfWork struct {
	inner repository.UnitOfWork
	wrap  func(repos repository.Repositories) repository.Repositories
}

func (w *wrappingUnitOfWork) Do(ctx context.Context, fn func(repos repository.Repositories) error) error {
	return w.inner.Do(ctx, func(repos repository.Repositories) error {
		return fn(w.wrap(repos))
	})
}
