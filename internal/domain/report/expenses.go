package report

import (
	"sort"
	"time"

	"github.com/rml/bookkeeper/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// ExpenseRow is one expense line on a report
type ExpenseRow struct {
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Payee       string          `json:"payee"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
}

// ExpensesReportData is the aggregated input for an expenses report document
type ExpensesReportData struct {
	GeneratedAt     time.Time       `json:"generated_at"`
	Filter          DateFilter      `json:"filter"`
	Rows            []ExpenseRow    `json:"rows"`
	Total           decimal.Decimal `json:"total"`
	HighestAmount   decimal.Decimal `json:"highest_amount"`
	HighestCategory string          `json:"highest_category,omitempty"`
	OldestDate      time.Time       `json:"oldest_date,omitempty"`
	OldestCategory  string          `json:"oldest_category,omitempty"`
}

// BuildExpensesReport filters the expenses snapshot by date and orders the
// rows largest first. An expense's category field may hold either a category
// id or a free-form label; ids that resolve are replaced with the category
// name and anything else is shown as stored.
func BuildExpensesReport(
	expenses []ledger.Expense,
	categories []ledger.Category,
	filter DateFilter,
	now time.Time,
) ExpensesReportData {
	filtered := FilterByDate(expenses, expenseCreatedAt, filter, now)

	byID := make(map[string]string, len(categories))
	for _, c := range categories {
		byID[c.ID] = c.Name
	}

	rows := make([]ExpenseRow, 0, len(filtered))
	for _, e := range filtered {
		label := e.Category
		if name, ok := byID[e.Category]; ok {
			label = name
		}
		rows = append(rows, ExpenseRow{
			Category:    label,
			Description: e.Description,
			Payee:       e.Payee,
			Amount:      e.Amount,
			Date:        e.CreatedAt,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Amount.GreaterThan(rows[j].Amount)
	})

	data := ExpensesReportData{
		GeneratedAt: now,
		Filter:      filter,
		Rows:        rows,
		Total:       Sum(filtered, expenseAmount),
	}
	if highest, ok := MaxByAmount(filtered, expenseAmount); ok {
		data.HighestAmount = highest.Amount
		data.HighestCategory = categoryLabel(highest.Category, byID)
	}
	if oldest, ok := Oldest(filtered, func(e ledger.Expense) time.Time { return e.CreatedAt }); ok {
		data.OldestDate = oldest.CreatedAt
		data.OldestCategory = categoryLabel(oldest.Category, byID)
	}
	return data
}

func categoryLabel(category string, byID map[string]string) string {
	if name, ok := byID[category]; ok {
		return name
	}
	return category
}

func expenseAmount(e ledger.Expense) decimal.Decimal { return e.Amount }

func expenseCreatedAt(e ledger.Expense) (time.Time, bool) {
	return e.CreatedAt, !e.CreatedAt.IsZero()
}
