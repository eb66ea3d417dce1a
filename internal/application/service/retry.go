package service

import (
	"context"
	"errors"

	"github.com/sangkips/fishledger/internal/domain/repository"
	"github.com/sangkips/fishledger/pkg/apperror"
	"go.uber.org/zap"
)

// DefaultMaxRetries is used when a service is built with a non-positive retry budget
const DefaultMaxRetries = 3

// ledgerTx runs ledger units of work. A unit of work that loses an optimistic
// version check is replayed from scratch, up to maxRetries more times.
type ledgerTx struct {
	uow        repository.UnitOfWork
	maxRetries int
	log        *zap.Logger
}

func newLedgerTx(uow repository.UnitOfWork, maxRetries int, log *zap.Logger) ledgerTx {
	if maxRetries < 1 {
		maxRetries = DefaultMaxRetries
	}
	return ledgerTx{uow: uow, maxRetries: maxRetries, log: log}
}

func (t ledgerTx) run(ctx context.Context, op string, fn func(repos repository.Repositories) error) error {
	for attempt := 0; ; attempt++ {
		err := t.uow.Do(ctx, fn)
		if !errors.Is(err, repository.ErrStaleRecord) {
			return err
		}
		if attempt >= t.maxRetries {
			t.log.Warn("giving up after concurrent modifications",
				zap.String("op", op), zap.Int("attempts", attempt+1))
			return apperror.ErrConcurrencyConflict
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		t.log.Debug("retrying after concurrent modification",
			zap.String("op", op), zap.Int("attempt", attempt+1))
	}
}
