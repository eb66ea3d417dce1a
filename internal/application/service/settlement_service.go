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

// SettlementService applies payments, refunds and deliveries to a single sale.
// Requested deltas are clamped into the legal range rather than rejected; a
// call whose clamped delta is zero returns the sale unchanged.
type SettlementService struct {
	tx  ledgerTx
	log *zap.Logger
}

// NewSettlementService creates a new settlement service
func NewSettlementService(uow repository.UnitOfWork, maxRetries int, log *zap.Logger) *SettlementService {
	return &SettlementService{
		tx:  newLedgerTx(uow, maxRetries, log),
		log: log,
	}
}

// Pay adds a payment. Overpayment is allowed and turns the sale into a credit.
func (s *SettlementService) Pay(ctx context.Context, ownerID, saleID uuid.UUID, amount decimal.Decimal) (*entity.Sale, error) {
	return s.apply(ctx, "pay", ownerID, saleID, func(sale *entity.Sale) decimal.Decimal {
		delta := ledger.Floor0(amount)
		sale.Payment = sale.Payment.Add(delta)
		return delta
	})
}

// Refund gives money back to the client, never more than the current credit surplus.
func (s *SettlementService) Refund(ctx context.Context, ownerID, saleID uuid.UUID, amount decimal.Decimal) (*entity.Sale, error) {
	return s.apply(ctx, "refund", ownerID, saleID, func(sale *entity.Sale) decimal.Decimal {
		delta := decimal.Min(ledger.Floor0(amount), ledger.Surplus(sale.Balance))
		sale.Payment = sale.Payment.Sub(delta)
		return delta
	})
}

// SettleAll pays exactly the outstanding amount.
func (s *SettlementService) SettleAll(ctx context.Context, ownerID, saleID uuid.UUID) (*entity.Sale, error) {
	return s.apply(ctx, "settle_all", ownerID, saleID, func(sale *entity.Sale) decimal.Decimal {
		delta := ledger.Floor0(sale.Amount.Sub(sale.Payment))
		sale.Payment = sale.Payment.Add(delta)
		return delta
	})
}

// Deliver records delivered quantity, never beyond what was ordered.
func (s *SettlementService) Deliver(ctx context.Context, ownerID, saleID uuid.UUID, quantity decimal.Decimal) (*entity.Sale, error) {
	return s.apply(ctx, "deliver", ownerID, saleID, func(sale *entity.Sale) decimal.Decimal {
		remaining := ledger.Floor0(sale.Quantity.Sub(sale.Delivered))
		delta := decimal.Min(ledger.Floor0(quantity), remaining)
		sale.Delivered = sale.Delivered.Add(delta)
		return delta
	})
}

// apply loads the sale, lets mutate change it and persists it unless the
// applied delta is zero.
func (s *SettlementService) apply(
	ctx context.Context,
	op string,
	ownerID, saleID uuid.UUID,
	mutate func(sale *entity.Sale) decimal.Decimal,
) (*entity.Sale, error) {
	var result *entity.Sale
	var applied decimal.Decimal

	err := s.tx.run(ctx, op, func(repos repository.Repositories) error {
		sale, err := repos.Sales.GetByID(ctx, ownerID, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return apperror.NewNotFoundError("Sale")
		}

		applied = mutate(sale)
		result = sale
		if applied.IsZero() {
			return nil
		}
		return repos.Sales.Update(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("settlement applied",
		zap.String("op", op),
		zap.Stringer("owner_id", ownerID),
		zap.Stringer("sale_id", saleID),
		zap.Stringer("delta", applied),
		zap.Stringer("balance", result.Balance),
	)
	return result, nil
}
