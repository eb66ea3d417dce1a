package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/fishledger/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettlement_SettleAll(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sale := f.mustCreate(t, "100", "10", "0")
	assertDecimal(t, "1000", sale.Amount)
	assertDecimal(t, "1000", sale.Balance)
	assert.False(t, sale.Settled)

	got, err := f.settlement.SettleAll(ctx, f.owner, sale.ID)
	require.NoError(t, err)
	assertDecimal(t, "1000", got.Payment)
	assertDecimal(t, "0", got.Balance)
	assert.True(t, got.Settled)
	assertConsistent(t, f.reload(t, sale.ID))

	// already settled: nothing left to pay
	again, err := f.settlement.SettleAll(ctx, f.owner, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, got.Version, again.Version)
}

func TestSettlement_Deliver_ClampsToOrdered(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sale := f.mustCreate(t, "50", "2", "0")

	got, err := f.settlement.Deliver(ctx, f.owner, sale.ID, dec("70"))
	require.NoError(t, err)
	assertDecimal(t, "50", got.Delivered)

	stored := f.reload(t, sale.ID)
	assertDecimal(t, "50", stored.Delivered)
	assertConsistent(t, stored)
}

func TestSettlement_Deliver_Accumulates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sale := f.mustCreate(t, "50", "2", "0")

	_, err := f.settlement.Deliver(ctx, f.owner, sale.ID, dec("20"))
	require.NoError(t, err)
	got, err := f.settlement.Deliver(ctx, f.owner, sale.ID, dec("45"))
	require.NoError(t, err)
	assertDecimal(t, "50", got.Delivered)
}

func TestSettlement_Refund_ClampsToSurplus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sale := f.mustCreate(t, "100", "10", "1200")
	assertDecimal(t, "-200", sale.Balance)

	got, err := f.settlement.Refund(ctx, f.owner, sale.ID, dec("500"))
	require.NoError(t, err)
	assertDecimal(t, "1000", got.Payment)
	assertDecimal(t, "0", got.Balance)
	assert.True(t, got.Settled)
	assertConsistent(t, f.reload(t, sale.ID))
}

func TestSettlement_Refund_WithoutCreditIsNoop(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sale := f.mustCreate(t, "100", "10", "400")

	got, err := f.settlement.Refund(ctx, f.owner, sale.ID, dec("100"))
	require.NoError(t, err)
	assertDecimal(t, "400", got.Payment)
	assert.Equal(t, sale.Version, f.reload(t, sale.ID).Version)
}

func TestSettlement_Pay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sale := f.mustCreate(t, "100", "10", "0")

	got, err := f.settlement.Pay(ctx, f.owner, sale.ID, dec("250.5"))
	require.NoError(t, err)
	assertDecimal(t, "250.5", got.Payment)
	assertDecimal(t, "749.5", got.Balance)

	// overpayment becomes a credit
	got, err = f.settlement.Pay(ctx, f.owner, sale.ID, dec("1000"))
	require.NoError(t, err)
	assertDecimal(t, "-250.5", got.Balance)
	assert.True(t, got.Settled)
	assertConsistent(t, f.reload(t, sale.ID))
}

func TestSettlement_ZeroAndNegativeDeltasAreNoops(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sale := f.mustCreate(t, "10", "10", "30")

	ops := map[string]func() error{
		"pay zero": func() error {
			_, err := f.settlement.Pay(ctx, f.owner, sale.ID, dec("0"))
			return err
		},
		"pay negative": func() error {
			_, err := f.settlement.Pay(ctx, f.owner, sale.ID, dec("-50"))
			return err
		},
		"deliver zero": func() error {
			_, err := f.settlement.Deliver(ctx, f.owner, sale.ID, dec("0"))
			return err
		},
		"deliver negative": func() error {
			_, err := f.settlement.Deliver(ctx, f.owner, sale.ID, dec("-3"))
			return err
		},
		"refund negative": func() error {
			_, err := f.settlement.Refund(ctx, f.owner, sale.ID, dec("-3"))
			return err
		},
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, op())
			stored := f.reload(t, sale.ID)
			assert.Equal(t, int64(1), stored.Version)
			assertDecimal(t, "30", stored.Payment)
			assertDecimal(t, "0", stored.Delivered)
		})
	}
}

func TestSettlement_NotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sale := f.mustCreate(t, "10", "10", "0")

	_, err := f.settlement.Pay(ctx, f.owner, uuid.New(), dec("5"))
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	// another owner's sale is indistinguishable from a missing one
	_, err = f.settlement.Pay(ctx, uuid.New(), sale.ID, dec("5"))
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assertDecimal(t, "0", f.reload(t, sale.ID).Payment)
}

func TestSettlement_InvariantsHoldAcrossSequence(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sale := f.mustCreate(t, "12.5", "3.3", "0")

	_, err := f.settlement.Pay(ctx, f.owner, sale.ID, dec("10.01"))
	require.NoError(t, err)
	_, err = f.settlement.Deliver(ctx, f.owner, sale.ID, dec("7.25"))
	require.NoError(t, err)
	_, err = f.settlement.Pay(ctx, f.owner, sale.ID, dec("50"))
	require.NoError(t, err)
	_, err = f.settlement.Refund(ctx, f.owner, sale.ID, dec("1000"))
	require.NoError(t, err)

	stored := f.reload(t, sale.ID)
	assertConsistent(t, stored)
	assertDecimal(t, "41.25", stored.Payment)
	assertDecimal(t, "0", stored.Balance)
	assert.True(t, stored.Settled)
}

func TestSettlement_KeepsFullPrecision(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sale := f.mustCreate(t, "123456.789", "98765.4321", "0")
	stored := f.reload(t, sale.ID)
	assertDecimal(t, "12193263111.2635269", stored.Amount)
	assertConsistent(t, stored)

	paid, err := f.settlement.Pay(ctx, f.owner, sale.ID, dec("0.1234567890123456789"))
	require.NoError(t, err)

	stored = f.reload(t, sale.ID)
	assertDecimal(t, "0.1234567890123456789", stored.Payment)
	assertDecimal(t, paid.Payment.String(), stored.Payment)
	assertDecimal(t, "12193263111.14", stored.Balance)
	assertConsistent(t, stored)
}

func TestSettlement_TimestampsFollowClock(t *testing.T) {
	f := newFixture(t)

	sale := f.mustCreate(t, "10", "10", "0")
	assert.True(t, testNow.Equal(f.reload(t, sale.ID).UpdatedAt))

	f.clock.Advance(2 * time.Hour)
	paid, err := f.settlement.Pay(context.Background(), f.owner, sale.ID, dec("5"))
	require.NoError(t, err)

	want := testNow.Add(2 * time.Hour)
	assert.True(t, want.Equal(paid.UpdatedAt), "returned updated_at %s", paid.UpdatedAt)
	stored := f.reload(t, sale.ID)
	assert.True(t, want.Equal(stored.UpdatedAt), "stored updated_at %s", stored.UpdatedAt)
	assert.True(t, testNow.Equal(stored.CreatedAt), "stored created_at %s", stored.CreatedAt)
}
