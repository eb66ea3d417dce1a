package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/fishledger/internal/domain/entity"
	"github.com/sangkips/fishledger/internal/domain/enum"
	domainRepo "github.com/sangkips/fishledger/internal/domain/repository"
	"github.com/sangkips/fishledger/internal/infrastructure/repository"
	"github.com/sangkips/fishledger/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitOfWork_CommitsBothStores(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	uow := repository.NewUnitOfWork(db)
	owner := uuid.New()

	sale := newSale(owner, "Awa", "10", "2", "0")
	err := uow.Do(ctx, func(repos domainRepo.Repositories) error {
		if err := repos.Sales.Create(ctx, sale); err != nil {
			return err
		}
		log, err := entity.NewActionLog(enum.ActionTypeEdit, sale, "typo", day)
		if err != nil {
			return err
		}
		return repos.ActionLogs.Create(ctx, log)
	})
	require.NoError(t, err)

	got, err := repository.NewSaleRepository(db).GetByID(ctx, owner, sale.ID)
	require.NoError(t, err)
	assert.NotNil(t, got)

	logs, total, err := repository.NewActionLogRepository(db).List(ctx, owner, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, logs, 1)
}

func TestUnitOfWork_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	uow := repository.NewUnitOfWork(db)
	owner := uuid.New()
	boom := errors.New("boom")

	sale := newSale(owner, "Awa", "10", "2", "0")
	err := uow.Do(ctx, func(repos domainRepo.Repositories) error {
		if err := repos.Sales.Create(ctx, sale); err != nil {
			return err
		}
		log, err := entity.NewActionLog(enum.ActionTypeDelete, sale, "gone", day)
		if err != nil {
			return err
		}
		if err := repos.ActionLogs.Create(ctx, log); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := repository.NewSaleRepository(db).GetByID(ctx, owner, sale.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, total, err := repository.NewActionLogRepository(db).List(ctx, owner, nil)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestActionLogRepository_List(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	sales := repository.NewSaleRepository(db)
	logs := repository.NewActionLogRepository(db)
	owner := uuid.New()

	sale := newSale(owner, "Awa", "10", "2", "5")
	require.NoError(t, sales.Create(ctx, sale))

	edit, err := entity.NewActionLog(enum.ActionTypeEdit, sale, "wrong price", day)
	require.NoError(t, err)
	require.NoError(t, logs.Create(ctx, edit))

	del, err := entity.NewActionLog(enum.ActionTypeDelete, sale, "duplicate", day.Add(72*time.Hour))
	require.NoError(t, err)
	require.NoError(t, logs.Create(ctx, del))

	foreign, err := entity.NewActionLog(enum.ActionTypeEdit, newSale(uuid.New(), "X", "1", "1", "0"), "x", day)
	require.NoError(t, err)
	require.NoError(t, logs.Create(ctx, foreign))

	deleteType := enum.ActionTypeDelete
	end := day.Add(24 * time.Hour)

	got, total, err := logs.List(ctx, owner, &domainRepo.ActionLogFilterParams{ActionType: &deleteType})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, got, 1)
	assert.Equal(t, "duplicate", got[0].Motif)

	got, total, err = logs.List(ctx, owner, &domainRepo.ActionLogFilterParams{EndDate: &end})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, got, 1)
	assert.Equal(t, enum.ActionTypeEdit, got[0].ActionType)

	got, total, err = logs.List(ctx, owner, &domainRepo.ActionLogFilterParams{SaleID: &sale.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	// newest first
	assert.Equal(t, enum.ActionTypeDelete, got[0].ActionType)

	prior, err := got[1].PriorSale()
	require.NoError(t, err)
	assert.Equal(t, sale.ID, prior.ID)
	assertDecimal(t, "15", prior.Balance)
}

func TestIdempotencyRepository(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewIdempotencyRepository(testutil.NewDB(t))
	owner := uuid.New()

	live := &entity.IdempotencyKey{
		Key: "abc", OwnerID: owner, Endpoint: "POST /api/v1/sales",
		ExpiresAt: day.Add(time.Minute),
	}
	expired := &entity.IdempotencyKey{
		Key: "old", OwnerID: owner, Endpoint: "POST /api/v1/sales",
		ExpiresAt: day.Add(-time.Hour),
	}
	for _, k := range []*entity.IdempotencyKey{live, expired} {
		reserved, err := repo.Reserve(ctx, k)
		require.NoError(t, err)
		require.True(t, reserved)
	}

	// a second holder of the same key is refused
	reserved, err := repo.Reserve(ctx, &entity.IdempotencyKey{
		Key: "abc", OwnerID: owner, Endpoint: "POST /api/v1/sales", ExpiresAt: day.Add(time.Minute),
	})
	require.NoError(t, err)
	assert.False(t, reserved)

	got, err := repo.GetByKey(ctx, "abc", owner)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.IsPending())

	live.ResponseCode = 201
	live.ResponseBody = `{"success":true}`
	live.ExpiresAt = day.Add(time.Hour)
	require.NoError(t, repo.Complete(ctx, live))

	got, err = repo.GetByKey(ctx, "abc", owner)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.IsPending())
	assert.Equal(t, 201, got.ResponseCode)
	assert.Equal(t, `{"success":true}`, got.ResponseBody)

	got, err = repo.GetByKey(ctx, "abc", uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)

	removed, err := repo.DeleteExpired(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	got, err = repo.GetByKey(ctx, "old", owner)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.Release(ctx, live))
	got, err = repo.GetByKey(ctx, "abc", owner)
	require.NoError(t, err)
	assert.Nil(t, got)
}
