package ledgersvc

import (
	"context"
	"time"

	"github.com/rml/bookkeeper/internal/domain/ledger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ExpenseService records business expenses
type ExpenseService struct {
	store ledger.Store
	log   *zap.Logger
}

// NewExpenseService creates the service
func NewExpenseService(store ledger.Store, log *zap.Logger) *ExpenseService {
	return &ExpenseService{store: store, log: log.Named("expenses")}
}

// Create records an expense
func (s *ExpenseService) Create(ctx context.Context, userID, category string, amount decimal.Decimal, description, payee string) (*ledger.Expense, error) {
	expense, err := ledger.NewExpense(category, amount, description, payee)
	if err != nil {
		return nil, err
	}
	if err := s.store.Insert(ctx, userID, ledger.CollectionExpenses, expense); err != nil {
		return nil, err
	}
	s.log.Info("expense recorded",
		zap.String("expense_id", expense.ID),
		zap.String("category", category))
	return expense, nil
}

// Update revises an expense
func (s *ExpenseService) Update(ctx context.Context, userID, expenseID, category string, amount decimal.Decimal, description, payee string) (*ledger.Expense, error) {
	doc, err := s.store.Get(ctx, userID, ledger.CollectionExpenses, expenseID)
	if err != nil {
		return nil, err
	}
	expense := ledger.ExpenseFromDocument(doc)
	if err := expense.Update(category, amount, description, payee); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, userID, ledger.CollectionExpenses, expenseID, &expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

// Delete removes an expense
func (s *ExpenseService) Delete(ctx context.Context, userID, expenseID string) error {
	return s.store.Delete(ctx, userID, ledger.CollectionExpenses, expenseID)
}

// SupplyService records stock deliveries
type SupplyService struct {
	store ledger.Store
	log   *zap.Logger
}

// NewSupplyService creates the service
func NewSupplyService(store ledger.Store, log *zap.Logger) *SupplyService {
	return &SupplyService{store: store, log: log.Named("supplies")}
}

// Create records a supply delivery
func (s *SupplyService) Create(ctx context.Context, userID, productID, supplyType string, quantity int, date time.Time) (*ledger.Supply, error) {
	supply, err := ledger.NewSupply(productID, supplyType, quantity, date)
	if err != nil {
		return nil, err
	}
	if err := s.store.Insert(ctx, userID, ledger.CollectionSupplies, supply); err != nil {
		return nil, err
	}
	s.log.Info("supply recorded",
		zap.String("supply_id", supply.ID),
		zap.String("product_id", productID),
		zap.Int("quantity", quantity))
	return supply, nil
}

// Delete removes a supply record
func (s *SupplyService) Delete(ctx context.Context, userID, supplyID string) error {
	return s.store.Delete(ctx, userID, ledger.CollectionSupplies, supplyID)
}

// DepositService records bank deposits
type DepositService struct {
	store ledger.Store
	log   *zap.Logger
}

// NewDepositService creates the service
func NewDepositService(store ledger.Store, log *zap.Logger) *DepositService {
	return &DepositService{store: store, log: log.Named("deposits")}
}

// Create records a bank deposit
func (s *DepositService) Create(ctx context.Context, userID string, amount decimal.Decimal, depositedBy, reference string, date time.Time) (*ledger.BankDeposit, error) {
	deposit, err := ledger.NewBankDeposit(amount, depositedBy, reference, date)
	if err != nil {
		return nil, err
	}
	if err := s.store.Insert(ctx, userID, ledger.CollectionBankDeposits, deposit); err != nil {
		return nil, err
	}
	s.log.Info("deposit recorded",
		zap.String("deposit_id", deposit.ID),
		zap.String("amount", amount.String()))
	return deposit, nil
}

// Delete removes a deposit record
func (s *DepositService) Delete(ctx context.Context, userID, depositID string) error {
	return s.store.Delete(ctx, userID, ledger.CollectionBankDeposits, depositID)
}
