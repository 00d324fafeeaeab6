package printing

import (
	"fmt"

	"github.com/rml/bookkeeper/internal/domain/report"
	"github.com/rml/bookkeeper/internal/infrastructure/config"
)

// RenderDebtsReport lays out the outstanding debts document: intro, summary,
// one section per product with its debt table and payments received today,
// then the sign-off card.
func RenderDebtsReport(cfg config.ReportConfig, data report.DebtsReportData, logo []byte) ([]byte, error) {
	b := NewBuilder(cfg, "Outstanding Debts Report", logo)
	b.IntroCard("Outstanding Debts Report", data.Filter.Label(), data.GeneratedAt)

	summary := []KV{
		{Key: "Debts on record", Value: b.Count(data.Summary.Total)},
		{Key: "Active", Value: b.Count(data.Summary.Active)},
		{Key: "Settled", Value: b.Count(data.Summary.Settled)},
		{Key: "Total outstanding", Value: b.Amount(data.Summary.TotalOwed)},
	}
	if data.Summary.HighestClient != "" {
		summary = append(summary, KV{
			Key:   "Largest debt (" + data.Summary.HighestClient + ")",
			Value: b.Amount(data.Summary.HighestAmount),
		})
	}
	if data.Summary.OldestClient != "" {
		summary = append(summary, KV{
			Key:   "Oldest debt (" + data.Summary.OldestClient + ")",
			Value: fmt.Sprintf("%d days", data.Summary.DaysSinceOldest),
		})
	}
	b.SummaryCard("Summary", summary)

	for _, section := range data.Sections {
		b.SectionTitle(section.Product)
		b.AddTable(debtTable(b, section))
		if len(section.PaidToday) > 0 {
			b.SectionTitle(section.Product + " - Paid Today")
			b.AddTable(paidTodayTable(b, section))
		}
	}

	b.ApprovalCard()
	return b.Finish()
}

func debtTable(b *Builder, section report.DebtCategorySection) Table {
	t := Table{
		Headers: []string{"Client", "Amount Owed", "Last Updated"},
		Widths:  []float64{0.45, 0.30, 0.25},
		Aligns:  []string{"L", "R", "C"},
	}
	for _, row := range section.Rows {
		updated := ""
		if !row.UpdatedAt.IsZero() {
			updated = row.UpdatedAt.Format("2006-01-02")
		}
		t.Rows = append(t.Rows, []string{row.Client, b.Amount(row.Amount), updated})
	}
	if len(t.Rows) > 0 {
		t.Rows = append(t.Rows, []string{TotalLabel, b.Amount(section.Total), ""})
	}
	return t
}

func paidTodayTable(b *Builder, section report.DebtCategorySection) Table {
	t := Table{
		Headers: []string{"Client", "Paid Today", "Balance Left"},
		Widths:  []float64{0.45, 0.30, 0.25},
		Aligns:  []string{"L", "R", "R"},
	}
	for _, row := range section.PaidToday {
		t.Rows = append(t.Rows, []string{row.Client, b.Amount(row.PaidToday), b.Amount(row.BalanceLeft)})
	}
	if len(t.Rows) > 0 {
		t.Rows = append(t.Rows, []string{TotalLabel, b.Amount(section.PaidTodayTotal), ""})
	}
	return t
}

// RenderExpensesReport lays out the expenses document
func RenderExpensesReport(cfg config.ReportConfig, data report.ExpensesReportData, logo []byte) ([]byte, error) {
	b := NewBuilder(cfg, "Expenses Report", logo)
	b.IntroCard("Expenses Report", data.Filter.Label(), data.GeneratedAt)

	summary := []KV{
		{Key: "Expenses recorded", Value: b.Count(len(data.Rows))},
		{Key: "Total spent", Value: b.Amount(data.Total)},
	}
	if data.HighestCategory != "" {
		summary = append(summary, KV{
			Key:   "Largest expense (" + data.HighestCategory + ")",
			Value: b.Amount(data.HighestAmount),
		})
	}
	if !data.OldestDate.IsZero() {
		summary = append(summary, KV{
			Key:   "Earliest in period (" + data.OldestCategory + ")",
			Value: data.OldestDate.Format("2006-01-02"),
		})
	}
	b.SummaryCard("Summary", summary)

	b.SectionTitle("Expenses")
	t := Table{
		Headers: []string{"Category", "Description", "Payee", "Amount", "Date"},
		Widths:  []float64{0.20, 0.28, 0.17, 0.20, 0.15},
		Aligns:  []string{"L", "L", "L", "R", "C"},
	}
	for _, row := range data.Rows {
		t.Rows = append(t.Rows, []string{
			row.Category,
			row.Description,
			row.Payee,
			b.Amount(row.Amount),
			row.Date.Format("2006-01-02"),
		})
	}
	if len(t.Rows) > 0 {
		t.Rows = append(t.Rows, []string{TotalLabel, "", "", b.Amount(data.Total), ""})
	}
	b.AddTable(t)

	b.ApprovalCard()
	return b.Finish()
}

// RenderSuppliesReport lays out the supplies reconciliation document
func RenderSuppliesReport(cfg config.ReportConfig, data report.SuppliesReportData, logo []byte) ([]byte, error) {
	b := NewBuilder(cfg, "Supplies Report", logo)
	b.IntroCard("Supplies Report", data.Filter.Label(), data.GeneratedAt)

	b.SummaryCard("Summary", []KV{
		{Key: "Units supplied", Value: b.Count(data.TotalSupplied)},
		{Key: "Units sold", Value: b.Count(data.TotalSold)},
		{Key: "Balance", Value: b.Count(data.TotalSupplied - data.TotalSold)},
	})

	b.SectionTitle("Supplied vs Sold")
	t := Table{
		Headers: []string{"Product", "Type", "Supplied", "Sold", "Balance"},
		Widths:  []float64{0.32, 0.20, 0.16, 0.16, 0.16},
		Aligns:  []string{"L", "L", "R", "R", "R"},
	}
	for _, row := range data.Rows {
		t.Rows = append(t.Rows, []string{
			row.ProductName,
			row.SupplyType,
			b.Count(row.Supplied),
			b.Count(row.Sold),
			b.Count(row.Balance),
		})
	}
	if len(t.Rows) > 0 {
		t.Rows = append(t.Rows, []string{
			TotalLabel, "",
			b.Count(data.TotalSupplied),
			b.Count(data.TotalSold),
			b.Count(data.TotalSupplied - data.TotalSold),
		})
	}
	b.AddTable(t)

	b.ApprovalCard()
	return b.Finish()
}
