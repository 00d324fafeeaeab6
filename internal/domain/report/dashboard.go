package report

import (
	"sort"
	"time"

	"github.com/rml/bookkeeper/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// QuickStats is the dashboard headline for a date range
type QuickStats struct {
	Filter        DateFilter      `json:"filter"`
	SalesTotal    decimal.Decimal `json:"sales_total"`
	SalesPaid     decimal.Decimal `json:"sales_paid"`
	ExpensesTotal decimal.Decimal `json:"expenses_total"`
	Balance       decimal.Decimal `json:"balance"`
	SalesCount    int             `json:"sales_count"`
	ExpensesCount int             `json:"expenses_count"`
	UnpaidCount   int             `json:"unpaid_count"`
	DebtsOpened   int             `json:"debts_opened"`
	ClientCount   int             `json:"client_count"`
	ProductCount  int             `json:"product_count"`
}

// CategoryTotal is one slice of the expenses-by-category breakdown
type CategoryTotal struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// BuildQuickStats computes the dashboard headline. Balance is cash received
// against cash spent, not invoiced totals. Client and product counts are
// totals on the books, not per-period.
func BuildQuickStats(
	sales []ledger.Sale,
	expenses []ledger.Expense,
	debts []ledger.Debt,
	clients []ledger.Client,
	products []ledger.Product,
	filter DateFilter,
	now time.Time,
) QuickStats {
	fs := FilterByDate(sales, saleDate, filter, now)
	fe := FilterByDate(expenses, expenseCreatedAt, filter, now)
	fd := FilterByDate(debts, debtCreatedAt, filter, now)

	stats := QuickStats{
		Filter:        filter,
		SalesTotal:    Sum(fs, func(s ledger.Sale) decimal.Decimal { return s.TotalAmount }),
		SalesPaid:     Sum(fs, func(s ledger.Sale) decimal.Decimal { return s.AmountPaid }),
		ExpensesTotal: Sum(fe, expenseAmount),
		SalesCount:    len(fs),
		ExpensesCount: len(fe),
		DebtsOpened:   len(fd),
		ClientCount:   len(clients),
		ProductCount:  len(products),
	}
	stats.Balance = stats.SalesPaid.Sub(stats.ExpensesTotal)
	for _, s := range fs {
		if s.PaymentStatus != ledger.PaymentStatusPaid {
			stats.UnpaidCount++
		}
	}
	return stats
}

// ExpensesByCategory totals filtered expenses per category label, largest
// first. Category ids that resolve are shown by name.
func ExpensesByCategory(
	expenses []ledger.Expense,
	categories []ledger.Category,
	filter DateFilter,
	now time.Time,
) []CategoryTotal {
	byID := make(map[string]string, len(categories))
	for _, c := range categories {
		byID[c.ID] = c.Name
	}

	totals := make(map[string]decimal.Decimal)
	for _, e := range FilterByDate(expenses, expenseCreatedAt, filter, now) {
		label := categoryLabel(e.Category, byID)
		totals[label] = totals[label].Add(e.Amount)
	}

	out := make([]CategoryTotal, 0, len(totals))
	for label, amount := range totals {
		out = append(out, CategoryTotal{Category: label, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Amount.Equal(out[j].Amount) {
			return out[i].Amount.GreaterThan(out[j].Amount)
		}
		return out[i].Category < out[j].Category
	})
	return out
}
