package ledgersvc

import (
	"context"

	"github.com/rml/bookkeeper/internal/domain/ledger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DebtService records payments against outstanding debts. When a payment
// settles the originating sale it is marked fully paid as well.
type DebtService struct {
	store ledger.Store
	log   *zap.Logger
}

// NewDebtService creates the service
func NewDebtService(store ledger.Store, log *zap.Logger) *DebtService {
	return &DebtService{store: store, log: log.Named("debts")}
}

// RecordPayment applies a payment to a debt. The debt stays on the books when
// settled so the history remains visible; its balance just reaches zero.
func (s *DebtService) RecordPayment(ctx context.Context, userID, debtID string, amount decimal.Decimal) (*ledger.Debt, error) {
	doc, err := s.store.Get(ctx, userID, ledger.CollectionDebts, debtID)
	if err != nil {
		return nil, err
	}
	debt := ledger.DebtFromDocument(doc)

	if err := debt.ApplyPayment(amount); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, userID, ledger.CollectionDebts, debtID, &debt); err != nil {
		return nil, err
	}

	if debt.IsSettled() && debt.SaleID != "" {
		if err := s.settleSale(ctx, userID, debt.SaleID); err != nil {
			s.log.Warn("debt settled but sale update failed",
				zap.String("debt_id", debtID),
				zap.String("sale_id", debt.SaleID),
				zap.Error(err))
		}
	}

	s.log.Info("payment recorded",
		zap.String("debt_id", debtID),
		zap.String("amount", amount.String()),
		zap.Bool("settled", debt.IsSettled()))
	return &debt, nil
}

// Delete removes a debt record
func (s *DebtService) Delete(ctx context.Context, userID, debtID string) error {
	if err := s.store.Delete(ctx, userID, ledger.CollectionDebts, debtID); err != nil {
		return err
	}
	s.log.Info("debt deleted", zap.String("debt_id", debtID))
	return nil
}

func (s *DebtService) settleSale(ctx context.Context, userID, saleID string) error {
	doc, err := s.store.Get(ctx, userID, ledger.CollectionSales, saleID)
	if err != nil {
		return err
	}
	sale := ledger.SaleFromDocument(doc)
	sale.MarkFullyPaid()
	return s.store.Update(ctx, userID, ledger.CollectionSales, saleID, &sale)
}
