package ledgersvc

import (
	"context"
	"testing"
	"time"

	"github.com/rml/bookkeeper/internal/domain/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testUser = "user-1"

func saleFixture(paid float64) CreateSaleInput {
	return CreateSaleInput{
		Client:     "alice",
		ProductID:  "prod-1",
		Quantity:   10,
		UnitPrice:  decimal.NewFromInt(1000),
		Discount:   decimal.NewFromInt(500),
		SupplyType: "bundle",
		AmountPaid: decimal.NewFromFloat(paid),
		Date:       time.Now(),
	}
}

// ============================================
// Create Tests
// ============================================

func TestSaleService_Create_UnderpaidOpensDebt(t *testing.T) {
	store := newFakeStore()
	svc := NewSaleService(store, zap.NewNop())

	sale, err := svc.Create(context.Background(), testUser, saleFixture(4000))
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(9500).Equal(sale.TotalAmount))
	assert.Equal(t, ledger.PaymentStatusPartial, sale.PaymentStatus)

	debts, err := store.Find(context.Background(), testUser, ledger.CollectionDebts, "sale_id", sale.ID)
	require.NoError(t, err)
	require.Len(t, debts, 1)

	debt := ledger.DebtFromDocument(debts[0])
	assert.True(t, decimal.NewFromInt(5500).Equal(debt.Amount))
	assert.Equal(t, "alice", debt.Client)
	assert.Equal(t, "prod-1", debt.ProductID)
}

func TestSaleService_Create_FullyPaidOpensNoDebt(t *testing.T) {
	store := newFakeStore()
	svc := NewSaleService(store, zap.NewNop())

	_, err := svc.Create(context.Background(), testUser, saleFixture(9500))
	require.NoError(t, err)

	assert.Equal(t, 1, store.count(ledger.CollectionSales))
	assert.Equal(t, 0, store.count(ledger.CollectionDebts))
}

func TestSaleService_Create_InvalidInput(t *testing.T) {
	store := newFakeStore()
	svc := NewSaleService(store, zap.NewNop())

	input := saleFixture(0)
	input.Quantity = 0
	_, err := svc.Create(context.Background(), testUser, input)
	require.Error(t, err)
	assert.Equal(t, 0, store.count(ledger.CollectionSales))
}

// ============================================
// Update Tests
// ============================================

func TestSaleService_Update_RebuildsDebt(t *testing.T) {
	store := newFakeStore()
	svc := NewSaleService(store, zap.NewNop())

	sale, err := svc.Create(context.Background(), testUser, saleFixture(4000))
	require.NoError(t, err)

	// Revised to fully paid: the open debt must disappear
	revised := saleFixture(9500)
	_, err = svc.Update(context.Background(), testUser, sale.ID, revised)
	require.NoError(t, err)
	assert.Equal(t, 0, store.count(ledger.CollectionDebts))

	// Revised back to underpaid: exactly one fresh debt reappears
	_, err = svc.Update(context.Background(), testUser, sale.ID, saleFixture(2000))
	require.NoError(t, err)

	debts, err := store.Find(context.Background(), testUser, ledger.CollectionDebts, "sale_id", sale.ID)
	require.NoError(t, err)
	require.Len(t, debts, 1)
	assert.True(t, decimal.NewFromInt(7500).Equal(ledger.DebtFromDocument(debts[0]).Amount))
}

func TestSaleService_Update_UnknownSale(t *testing.T) {
	svc := NewSaleService(newFakeStore(), zap.NewNop())

	_, err := svc.Update(context.Background(), testUser, "missing", saleFixture(0))
	assert.Error(t, err)
}

// ============================================
// Delete Tests
// ============================================

func TestSaleService_Delete_CascadesToDebt(t *testing.T) {
	store := newFakeStore()
	svc := NewSaleService(store, zap.NewNop())

	sale, err := svc.Create(context.Background(), testUser, saleFixture(4000))
	require.NoError(t, err)
	require.Equal(t, 1, store.count(ledger.CollectionDebts))

	require.NoError(t, svc.Delete(context.Background(), testUser, sale.ID))
	assert.Equal(t, 0, store.count(ledger.CollectionSales))
	assert.Equal(t, 0, store.count(ledger.CollectionDebts))
}

// ============================================
// Debt Payment Tests
// ============================================

func TestDebtService_RecordPayment(t *testing.T) {
	store := newFakeStore()
	sales := NewSaleService(store, zap.NewNop())
	debts := NewDebtService(store, zap.NewNop())

	sale, err := sales.Create(context.Background(), testUser, saleFixture(4000))
	require.NoError(t, err)

	found, err := store.Find(context.Background(), testUser, ledger.CollectionDebts, "sale_id", sale.ID)
	require.NoError(t, err)
	debtID := ledger.DebtFromDocument(found[0]).ID

	debt, err := debts.RecordPayment(context.Background(), testUser, debtID, decimal.NewFromInt(2000))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(3500).Equal(debt.Amount))
	assert.False(t, debt.IsSettled())
}

func TestDebtService_RecordPayment_SettlingMarksSalePaid(t *testing.T) {
	store := newFakeStore()
	sales := NewSaleService(store, zap.NewNop())
	debts := NewDebtService(store, zap.NewNop())

	sale, err := sales.Create(context.Background(), testUser, saleFixture(4000))
	require.NoError(t, err)

	found, err := store.Find(context.Background(), testUser, ledger.CollectionDebts, "sale_id", sale.ID)
	require.NoError(t, err)
	debtID := ledger.DebtFromDocument(found[0]).ID

	debt, err := debts.RecordPayment(context.Background(), testUser, debtID, decimal.NewFromInt(5500))
	require.NoError(t, err)
	assert.True(t, debt.IsSettled())

	// The debt stays on the books at zero; the sale flips to paid
	assert.Equal(t, 1, store.count(ledger.CollectionDebts))
	updated, err := sales.Get(context.Background(), testUser, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, ledger.PaymentStatusPaid, updated.PaymentStatus)
	assert.False(t, updated.HasOutstanding())
}

func TestDebtService_RecordPayment_Overpayment(t *testing.T) {
	store := newFakeStore()
	sales := NewSaleService(store, zap.NewNop())
	debts := NewDebtService(store, zap.NewNop())

	sale, err := sales.Create(context.Background(), testUser, saleFixture(4000))
	require.NoError(t, err)

	found, err := store.Find(context.Background(), testUser, ledger.CollectionDebts, "sale_id", sale.ID)
	require.NoError(t, err)
	debtID := ledger.DebtFromDocument(found[0]).ID

	_, err = debts.RecordPayment(context.Background(), testUser, debtID, decimal.NewFromInt(6000))
	require.Error(t, err)

	// Balance untouched
	doc, err := store.Get(context.Background(), testUser, ledger.CollectionDebts, debtID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(5500).Equal(ledger.DebtFromDocument(doc).Amount))
}
