package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/fishledger/internal/domain/entity"
	"github.com/sangkips/fishledger/internal/domain/ledger"
	"github.com/sangkips/fishledger/internal/domain/repository"
	"github.com/sangkips/fishledger/pkg/apperror"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CompensationService moves surplus credit from one sale onto the debt of another
type CompensationService struct {
	tx  ledgerTx
	log *zap.Logger
}

// NewCompensationService creates a new compensation service
func NewCompensationService(uow repository.UnitOfWork, maxRetries int, log *zap.Logger) *CompensationService {
	return &CompensationService{
		tx:  newLedgerTx(uow, maxRetries, log),
		log: log,
	}
}

// CompensationResult reports the amount actually moved and both sales after the move
type CompensationResult struct {
	ActualAmount decimal.Decimal `json:"actual_amount"`
	Debt         *entity.Sale    `json:"debt"`
	Credit       *entity.Sale    `json:"credit"`
}

// Compensate applies min(amountToUse, debt balance, credit surplus) as a
// payment on the debt and a refund on the credit, atomically.
func (s *CompensationService) Compensate(ctx context.Context, ownerID, debtID, creditID uuid.UUID, amountToUse decimal.Decimal) (*CompensationResult, error) {
	var result *CompensationResult

	err := s.tx.run(ctx, "compensate", func(repos repository.Repositories) error {
		debt, err := repos.Sales.GetByID(ctx, ownerID, debtID)
		if err != nil {
			return err
		}
		if debt == nil {
			return apperror.NewFieldNotFoundError("Debt sale", "debt_id")
		}
		if !debt.IsDebt() {
			return apperror.NewIncompatibleSignError("debt_id", "Sale has no outstanding debt")
		}

		credit, err := repos.Sales.GetByID(ctx, ownerID, creditID)
		if err != nil {
			return err
		}
		if credit == nil {
			return apperror.NewFieldNotFoundError("Credit sale", "credit_id")
		}
		if !credit.IsCredit() {
			return apperror.NewIncompatibleSignError("credit_id", "Sale has no credit surplus")
		}

		actual := decimal.Min(amountToUse, debt.Balance, ledger.Surplus(credit.Balance))
		if !actual.IsPositive() {
			return apperror.ErrNoCompensationPossible
		}

		debt.Payment = debt.Payment.Add(actual)
		credit.Payment = credit.Payment.Sub(actual)

		if err := repos.Sales.Update(ctx, debt); err != nil {
			return err
		}
		if err := repos.Sales.Update(ctx, credit); err != nil {
			return err
		}

		result = &CompensationResult{ActualAmount: actual, Debt: debt, Credit: credit}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("compensation applied",
		zap.Stringer("owner_id", ownerID),
		zap.Stringer("debt_id", debtID),
		zap.Stringer("credit_id", creditID),
		zap.Stringer("amount", result.ActualAmount),
	)
	return result, nil
}
