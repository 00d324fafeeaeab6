package report

import (
	"sort"
	"time"

	"github.com/rml/bookkeeper/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// DebtRow is one outstanding debt line on a report
type DebtRow struct {
	Client    string          `json:"client"`
	Amount    decimal.Decimal `json:"amount"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// PaidTodayRow is one debt payment recorded today
type PaidTodayRow struct {
	Client      string          `json:"client"`
	PaidToday   decimal.Decimal `json:"paid_today"`
	BalanceLeft decimal.Decimal `json:"balance_left"`
}

// DebtCategorySection groups a product's outstanding debts with its metrics
type DebtCategorySection struct {
	Product        string          `json:"product"`
	Rows           []DebtRow       `json:"rows"`
	PaidToday      []PaidTodayRow  `json:"paid_today"`
	Total          decimal.Decimal `json:"total"`
	PaidTodayTotal decimal.Decimal `json:"paid_today_total"`
	HighestAmount  decimal.Decimal `json:"highest_amount"`
	HighestClient  string          `json:"highest_client,omitempty"`
	OldestSince    time.Time       `json:"oldest_since,omitempty"`
	OldestClient   string          `json:"oldest_client,omitempty"`
}

// DebtSummary carries the overall debt metrics shown on the debts dashboard
type DebtSummary struct {
	Total           int             `json:"total"`
	Active          int             `json:"active"`
	Settled         int             `json:"settled"`
	TotalOwed       decimal.Decimal `json:"total_owed"`
	HighestAmount   decimal.Decimal `json:"highest_amount"`
	HighestClient   string          `json:"highest_client,omitempty"`
	OldestSince     time.Time       `json:"oldest_since,omitempty"`
	OldestClient    string          `json:"oldest_client,omitempty"`
	DaysSinceOldest int             `json:"days_since_oldest"`
}

// DebtsReportData is the aggregated input for a debts report document
type DebtsReportData struct {
	GeneratedAt time.Time             `json:"generated_at"`
	Filter      DateFilter            `json:"filter"`
	Sections    []DebtCategorySection `json:"sections"`
	Summary     DebtSummary           `json:"summary"`
}

// BuildDebtsReport filters the debts snapshot by date and rolls it up per
// product. Debts whose product reference no longer resolves are excluded from
// every section; the overall summary still counts them.
func BuildDebtsReport(
	debts []ledger.Debt,
	products []ledger.Product,
	filter DateFilter,
	now time.Time,
) DebtsReportData {
	filtered := FilterByDate(debts, debtCreatedAt, filter, now)
	idx := IndexProducts(products)

	names := make([]string, 0, len(products))
	for _, p := range products {
		names = append(names, p.Name)
	}
	sort.Strings(names)

	sections := make([]DebtCategorySection, 0, len(names))
	for _, name := range names {
		sections = append(sections, buildDebtSection(name, filtered, idx, now))
	}

	return DebtsReportData{
		GeneratedAt: now,
		Filter:      filter,
		Sections:    sections,
		Summary:     SummarizeDebts(filtered, now),
	}
}

func buildDebtSection(product string, debts []ledger.Debt, idx ProductIndex, now time.Time) DebtCategorySection {
	scoped := DebtsForProduct(debts, idx, product)

	rows := make([]DebtRow, 0, len(scoped))
	for _, d := range scoped {
		rows = append(rows, DebtRow{Client: d.Client, Amount: d.Amount, UpdatedAt: d.UpdatedAt})
	}
	// Largest balances first; stable so equal amounts keep snapshot order.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Amount.GreaterThan(rows[j].Amount)
	})

	paidToday := DebtsPaidOn(scoped, now)
	paidRows := make([]PaidTodayRow, 0, len(paidToday))
	for _, d := range paidToday {
		paidRows = append(paidRows, PaidTodayRow{
			Client:      d.Client,
			PaidToday:   d.LastPaidAmount,
			BalanceLeft: d.Amount,
		})
	}

	section := DebtCategorySection{
		Product:   product,
		Rows:      rows,
		PaidToday: paidRows,
		Total:     Sum(scoped, debtAmount),
		PaidTodayTotal: Sum(paidToday, func(d ledger.Debt) decimal.Decimal {
			return d.LastPaidAmount
		}),
	}
	if highest, ok := MaxByAmount(scoped, debtAmount); ok {
		section.HighestAmount = highest.Amount
		section.HighestClient = highest.Client
	}
	if oldest, ok := Oldest(scoped, func(d ledger.Debt) time.Time { return d.CreatedAt }); ok {
		section.OldestSince = oldest.CreatedAt
		section.OldestClient = oldest.Client
	}
	return section
}

// SummarizeDebts computes the overall debt metrics for a filtered set
func SummarizeDebts(debts []ledger.Debt, now time.Time) DebtSummary {
	active := make([]ledger.Debt, 0, len(debts))
	settled := 0
	for _, d := range debts {
		if d.Amount.GreaterThan(decimal.Zero) {
			active = append(active, d)
		} else {
			settled++
		}
	}

	summary := DebtSummary{
		Total:     len(debts),
		Active:    len(active),
		Settled:   settled,
		TotalOwed: Sum(active, debtAmount),
	}
	if highest, ok := MaxByAmount(active, debtAmount); ok {
		summary.HighestAmount = highest.Amount
		summary.HighestClient = highest.Client
	}
	if oldest, ok := Oldest(active, func(d ledger.Debt) time.Time { return d.CreatedAt }); ok {
		summary.OldestSince = oldest.CreatedAt
		summary.OldestClient = oldest.Client
		summary.DaysSinceOldest = int(now.Sub(oldest.CreatedAt).Hours() / 24)
	}
	return summary
}

func debtAmount(d ledger.Debt) decimal.Decimal { return d.Amount }

func debtCreatedAt(d ledger.Debt) (time.Time, bool) {
	return d.CreatedAt, !d.CreatedAt.IsZero()
}
