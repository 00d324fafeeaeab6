package report

import (
	"testing"
	"time"

	"github.com/rml/bookkeeper/internal/domain/ledger"
	"github.com/rml/bookkeeper/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testExpense(id, category string, amount float64, created time.Time) ledger.Expense {
	return ledger.Expense{
		BaseEntity: entityAt(id, created),
		Category:   category,
		Amount:     decimal.NewFromFloat(amount),
	}
}

func testSale(id, productID, supplyType string, qty int, total, paid float64, date time.Time) ledger.Sale {
	status := ledger.DerivePaymentStatus(decimal.NewFromFloat(paid), decimal.NewFromFloat(total))
	return ledger.Sale{
		BaseEntity: entityAt(id, date),
		Client:     "client-" + id,
		Product: ledger.ProductLine{
			ProductID:  productID,
			Quantity:   qty,
			SupplyType: supplyType,
		},
		TotalAmount:   decimal.NewFromFloat(total),
		AmountPaid:    decimal.NewFromFloat(paid),
		PaymentStatus: status,
		Date:          date,
	}
}

func testSupply(id, productID, supplyType string, qty int, date time.Time) ledger.Supply {
	return ledger.Supply{
		BaseEntity: entityAt(id, date),
		ProductID:  productID,
		SupplyType: supplyType,
		Quantity:   qty,
		Date:       date,
	}
}

// ============================================
// BuildDebtsReport Tests
// ============================================

func TestBuildDebtsReport_SectionsPerProduct(t *testing.T) {
	products := []ledger.Product{
		testProduct("p1", "Straws"),
		testProduct("p2", "Toilet Paper"),
	}
	debts := []ledger.Debt{
		testDebt("1", "alice", "p1", 100, testNow),
		testDebt("2", "bob", "p1", 9500, testNow.AddDate(0, 0, -3)),
		testDebt("3", "carol", "p2", 700, testNow),
		testDebt("4", "dan", "gone", 999, testNow),
	}

	data := BuildDebtsReport(debts, products, DateFilter{Type: FilterAll}, testNow)
	require.Len(t, data.Sections, 2)

	// Sections ordered by product name
	straws := data.Sections[0]
	assert.Equal(t, "Straws", straws.Product)
	require.Len(t, straws.Rows, 2)
	// Rows ordered largest first
	assert.Equal(t, "bob", straws.Rows[0].Client)
	assert.True(t, decimal.NewFromInt(9600).Equal(straws.Total))
	assert.Equal(t, "bob", straws.HighestClient)
	assert.Equal(t, "bob", straws.OldestClient)

	paper := data.Sections[1]
	assert.Equal(t, "Toilet Paper", paper.Product)
	require.Len(t, paper.Rows, 1)
	assert.True(t, decimal.NewFromInt(700).Equal(paper.Total))
}

func TestBuildDebtsReport_PaidTodayRows(t *testing.T) {
	products := []ledger.Product{testProduct("p1", "Straws")}
	paid := testDebt("1", "alice", "p1", 400, testNow.AddDate(0, 0, -10))
	paid.LastPaidAmount = decimal.NewFromInt(600)
	paid.UpdatedAt = testNow

	data := BuildDebtsReport([]ledger.Debt{paid}, products, DateFilter{Type: FilterAll}, testNow)
	require.Len(t, data.Sections, 1)
	require.Len(t, data.Sections[0].PaidToday, 1)

	row := data.Sections[0].PaidToday[0]
	assert.Equal(t, "alice", row.Client)
	assert.True(t, decimal.NewFromInt(600).Equal(row.PaidToday))
	assert.True(t, decimal.NewFromInt(400).Equal(row.BalanceLeft))
	assert.True(t, decimal.NewFromInt(600).Equal(data.Sections[0].PaidTodayTotal))
}

func TestBuildDebtsReport_DateFilterOnCreatedAt(t *testing.T) {
	products := []ledger.Product{testProduct("p1", "Straws")}
	debts := []ledger.Debt{
		testDebt("1", "today", "p1", 100, testNow),
		testDebt("2", "lastWeek", "p1", 200, testNow.AddDate(0, 0, -7)),
	}

	data := BuildDebtsReport(debts, products, DateFilter{Type: FilterToday}, testNow)
	require.Len(t, data.Sections[0].Rows, 1)
	assert.Equal(t, "today", data.Sections[0].Rows[0].Client)
}

// ============================================
// SummarizeDebts Tests
// ============================================

func TestSummarizeDebts(t *testing.T) {
	settled := testDebt("1", "alice", "p1", 0, testNow.AddDate(0, 0, -40))
	active1 := testDebt("2", "bob", "p1", 5500, testNow.AddDate(0, 0, -30))
	active2 := testDebt("3", "carol", "p1", 300, testNow.AddDate(0, 0, -5))

	s := SummarizeDebts([]ledger.Debt{settled, active1, active2}, testNow)

	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.Active)
	assert.Equal(t, 1, s.Settled)
	assert.True(t, decimal.NewFromInt(5800).Equal(s.TotalOwed))
	assert.Equal(t, "bob", s.HighestClient)
	// Settled debts do not count toward oldest
	assert.Equal(t, "bob", s.OldestClient)
	assert.Equal(t, 30, s.DaysSinceOldest)
}

func TestSummarizeDebts_Empty(t *testing.T) {
	s := SummarizeDebts(nil, testNow)
	assert.Zero(t, s.Total)
	assert.True(t, s.TotalOwed.IsZero())
	assert.Empty(t, s.HighestClient)
	assert.Zero(t, s.DaysSinceOldest)
}

// ============================================
// BuildExpensesReport Tests
// ============================================

func TestBuildExpensesReport_ResolvesCategoryIDs(t *testing.T) {
	categories := []ledger.Category{
		{BaseEntity: shared.BaseEntity{ID: "cat-1"}, Name: "Transport"},
	}
	expenses := []ledger.Expense{
		testExpense("1", "cat-1", 1200, testNow),
		testExpense("2", "Fuel", 4000, testNow),
	}

	data := BuildExpensesReport(expenses, categories, DateFilter{Type: FilterAll}, testNow)
	require.Len(t, data.Rows, 2)

	// Largest first
	assert.Equal(t, "Fuel", data.Rows[0].Category)
	assert.Equal(t, "Transport", data.Rows[1].Category)
	assert.True(t, decimal.NewFromInt(5200).Equal(data.Total))
	assert.Equal(t, "Fuel", data.HighestCategory)
	assert.True(t, decimal.NewFromInt(4000).Equal(data.HighestAmount))
}

func TestBuildExpensesReport_EmptyAfterFilter(t *testing.T) {
	expenses := []ledger.Expense{testExpense("1", "Rent", 9000, testNow.AddDate(0, -1, 0))}

	data := BuildExpensesReport(expenses, nil, DateFilter{Type: FilterToday}, testNow)
	assert.Empty(t, data.Rows)
	assert.True(t, data.Total.IsZero())
	assert.Empty(t, data.HighestCategory)
}

// ============================================
// BuildSupplyRollup Tests
// ============================================

func TestBuildSupplyRollup_BalanceAndCaseInsensitiveTypes(t *testing.T) {
	products := []ledger.Product{testProduct("p1", "Straws")}
	supplies := []ledger.Supply{
		testSupply("1", "p1", "Bundle", 50, testNow),
		testSupply("2", "p1", "bundle", 30, testNow),
	}
	sales := []ledger.Sale{
		testSale("1", "p1", "BUNDLE", 20, 20000, 20000, testNow),
	}

	data := BuildSupplyRollup(supplies, sales, products, DateFilter{Type: FilterAll}, testNow)
	require.Len(t, data.Rows, 1)

	row := data.Rows[0]
	assert.Equal(t, "Straws", row.ProductName)
	assert.Equal(t, "Bundle", row.SupplyType)
	assert.Equal(t, 80, row.Supplied)
	assert.Equal(t, 20, row.Sold)
	assert.Equal(t, 60, row.Balance)
	assert.Equal(t, 80, data.TotalSupplied)
	assert.Equal(t, 20, data.TotalSold)
}

func TestBuildSupplyRollup_NegativeBalance(t *testing.T) {
	products := []ledger.Product{testProduct("p1", "Straws")}
	sales := []ledger.Sale{testSale("1", "p1", "piece", 10, 1000, 1000, testNow)}

	data := BuildSupplyRollup(nil, sales, products, DateFilter{Type: FilterAll}, testNow)
	require.Len(t, data.Rows, 1)
	assert.Equal(t, -10, data.Rows[0].Balance)
}

func TestBuildSupplyRollup_SkipsUnresolvedAndZeroRows(t *testing.T) {
	products := []ledger.Product{testProduct("p1", "Straws")}
	supplies := []ledger.Supply{
		testSupply("1", "gone", "bundle", 40, testNow),
		testSupply("2", "p1", "bundle", 0, testNow),
	}

	data := BuildSupplyRollup(supplies, nil, products, DateFilter{Type: FilterAll}, testNow)
	assert.Empty(t, data.Rows)
	assert.Zero(t, data.TotalSupplied)
}

func TestBuildSupplyRollup_SortedByProductThenType(t *testing.T) {
	products := []ledger.Product{
		testProduct("p1", "Straws"),
		testProduct("p2", "Cups"),
	}
	supplies := []ledger.Supply{
		testSupply("1", "p1", "piece", 5, testNow),
		testSupply("2", "p2", "bundle", 5, testNow),
		testSupply("3", "p1", "bundle", 5, testNow),
	}

	data := BuildSupplyRollup(supplies, nil, products, DateFilter{Type: FilterAll}, testNow)
	require.Len(t, data.Rows, 3)
	assert.Equal(t, "Cups", data.Rows[0].ProductName)
	assert.Equal(t, "Bundle", data.Rows[1].SupplyType)
	assert.Equal(t, "Piece", data.Rows[2].SupplyType)
}

// ============================================
// Dashboard Tests
// ============================================

func TestBuildQuickStats_BalanceUsesCashReceived(t *testing.T) {
	sales := []ledger.Sale{
		testSale("1", "p1", "", 10, 10000, 10000, testNow),
		testSale("2", "p1", "", 5, 9500, 4000, testNow),
	}
	expenses := []ledger.Expense{testExpense("1", "Rent", 3000, testNow)}
	debts := []ledger.Debt{
		testDebt("d1", "alice", "p1", 5500, testNow),
		testDebt("d2", "bob", "p1", 1200, testNow.AddDate(0, -2, 0)),
	}
	clients := []ledger.Client{{BaseEntity: shared.BaseEntity{ID: "c1"}, Name: "alice"}}
	products := []ledger.Product{testProduct("p1", "Straws"), testProduct("p2", "Cups")}

	stats := BuildQuickStats(sales, expenses, debts, clients, products, DateFilter{Type: FilterToday}, testNow)

	assert.True(t, decimal.NewFromInt(19500).Equal(stats.SalesTotal))
	assert.True(t, decimal.NewFromInt(14000).Equal(stats.SalesPaid))
	assert.True(t, decimal.NewFromInt(3000).Equal(stats.ExpensesTotal))
	assert.True(t, decimal.NewFromInt(11000).Equal(stats.Balance))
	assert.Equal(t, 2, stats.SalesCount)
	assert.Equal(t, 1, stats.UnpaidCount)
	// Only the debt opened today is in-period; catalog counts are totals
	assert.Equal(t, 1, stats.DebtsOpened)
	assert.Equal(t, 1, stats.ClientCount)
	assert.Equal(t, 2, stats.ProductCount)
}

func TestExpensesByCategory_GroupsAndSorts(t *testing.T) {
	categories := []ledger.Category{
		{BaseEntity: shared.BaseEntity{ID: "cat-1"}, Name: "Transport"},
	}
	expenses := []ledger.Expense{
		testExpense("1", "cat-1", 500, testNow),
		testExpense("2", "cat-1", 700, testNow),
		testExpense("3", "Rent", 9000, testNow),
	}

	got := ExpensesByCategory(expenses, categories, DateFilter{Type: FilterAll}, testNow)
	require.Len(t, got, 2)
	assert.Equal(t, "Rent", got[0].Category)
	assert.Equal(t, "Transport", got[1].Category)
	assert.True(t, decimal.NewFromInt(1200).Equal(got[1].Amount))
}
