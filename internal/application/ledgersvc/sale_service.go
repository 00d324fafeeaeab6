package ledgersvc

import (
	"context"
	"time"

	"github.com/rml/bookkeeper/internal/domain/ledger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateSaleInput carries the fields for recording a sale
type CreateSaleInput struct {
	Client     string
	ProductID  string
	Quantity   int
	UnitPrice  decimal.Decimal
	Discount   decimal.Decimal
	SupplyType string
	AmountPaid decimal.Decimal
	Date       time.Time
}

// SaleService records sales and keeps the debt ledger consistent with them.
// An underpaid sale always leaves exactly one debt carrying its id; editing
// or deleting the sale cascades to that debt.
type SaleService struct {
	store ledger.Store
	log   *zap.Logger
}

// NewSaleService creates the service
func NewSaleService(store ledger.Store, log *zap.Logger) *SaleService {
	return &SaleService{store: store, log: log.Named("sales")}
}

// Create records a sale and, when underpaid, the debt it leaves behind
func (s *SaleService) Create(ctx context.Context, userID string, input CreateSaleInput) (*ledger.Sale, error) {
	sale, err := ledger.NewSale(input.Client, ledger.ProductLine{
		ProductID:  input.ProductID,
		Quantity:   input.Quantity,
		UnitPrice:  input.UnitPrice,
		Discount:   input.Discount,
		SupplyType: input.SupplyType,
	}, input.AmountPaid, input.Date)
	if err != nil {
		return nil, err
	}

	if err := s.store.Insert(ctx, userID, ledger.CollectionSales, sale); err != nil {
		return nil, err
	}

	if sale.HasOutstanding() {
		debt, err := ledger.NewDebtForSale(sale)
		if err != nil {
			return nil, err
		}
		if err := s.store.Insert(ctx, userID, ledger.CollectionDebts, debt); err != nil {
			return nil, err
		}
		s.log.Info("debt opened for underpaid sale",
			zap.String("sale_id", sale.ID),
			zap.String("debt_id", debt.ID),
			zap.String("amount", debt.Amount.String()))
	}

	s.log.Info("sale recorded",
		zap.String("sale_id", sale.ID),
		zap.String("client", sale.Client),
		zap.String("status", sale.PaymentStatus.String()))
	return sale, nil
}

// Update revises a sale and rebuilds its debt from the new outstanding amount
func (s *SaleService) Update(ctx context.Context, userID, saleID string, input CreateSaleInput) (*ledger.Sale, error) {
	doc, err := s.store.Get(ctx, userID, ledger.CollectionSales, saleID)
	if err != nil {
		return nil, err
	}
	sale := ledger.SaleFromDocument(doc)

	err = sale.Revise(input.Client, ledger.ProductLine{
		ProductID:  input.ProductID,
		Quantity:   input.Quantity,
		UnitPrice:  input.UnitPrice,
		Discount:   input.Discount,
		SupplyType: input.SupplyType,
	}, input.AmountPaid, input.Date)
	if err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, userID, ledger.CollectionSales, saleID, &sale); err != nil {
		return nil, err
	}
	if err := s.dropDebtsForSale(ctx, userID, saleID); err != nil {
		return nil, err
	}
	if sale.HasOutstanding() {
		debt, err := ledger.NewDebtForSale(&sale)
		if err != nil {
			return nil, err
		}
		if err := s.store.Insert(ctx, userID, ledger.CollectionDebts, debt); err != nil {
			return nil, err
		}
	}

	s.log.Info("sale revised", zap.String("sale_id", saleID))
	return &sale, nil
}

// Delete removes a sale together with any debt it created
func (s *SaleService) Delete(ctx context.Context, userID, saleID string) error {
	if err := s.store.Delete(ctx, userID, ledger.CollectionSales, saleID); err != nil {
		return err
	}
	if err := s.dropDebtsForSale(ctx, userID, saleID); err != nil {
		return err
	}
	s.log.Info("sale deleted", zap.String("sale_id", saleID))
	return nil
}

// Get returns one sale by id
func (s *SaleService) Get(ctx context.Context, userID, saleID string) (*ledger.Sale, error) {
	doc, err := s.store.Get(ctx, userID, ledger.CollectionSales, saleID)
	if err != nil {
		return nil, err
	}
	sale := ledger.SaleFromDocument(doc)
	return &sale, nil
}

func (s *SaleService) dropDebtsForSale(ctx context.Context, userID, saleID string) error {
	docs, err := s.store.Find(ctx, userID, ledger.CollectionDebts, "sale_id", saleID)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		debt := ledger.DebtFromDocument(doc)
		if err := s.store.Delete(ctx, userID, ledger.CollectionDebts, debt.ID); err != nil {
			return err
		}
	}
	return nil
}
