package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// ============================================
// SaleFromDocument Tests
// ============================================

func TestSaleFromDocument_MessySourceData(t *testing.T) {
	doc := Document{
		"_id":    "sale-1",
		"client": "alice",
		"product": map[string]any{
			"product_id":  "prod-1",
			"quantity":    "10",
			"unit_price":  "1,000",
			"supply_type": "Bundle",
		},
		"total_amount":   "9,500.00",
		"amount_paid":    4000.0,
		"payment_status": "PARTIAL", // wrong case, not a valid status
		"date":           "2025-03-12",
		"created_at":     "2025-03-12T08:00:00Z",
	}

	sale := SaleFromDocument(doc)

	assert.Equal(t, "sale-1", sale.ID)
	assert.Equal(t, "alice", sale.Client)
	assert.Equal(t, 10, sale.Product.Quantity)
	assert.True(t, decimal.NewFromInt(1000).Equal(sale.Product.UnitPrice))
	assert.True(t, decimal.NewFromInt(9500).Equal(sale.TotalAmount))
	assert.False(t, sale.Date.IsZero())
	assert.False(t, sale.CreatedAt.IsZero())
	// Invalid stored status is re-derived from the amounts
	assert.Equal(t, PaymentStatusPartial, sale.PaymentStatus)
}

func TestSaleFromDocument_EmptyDocument(t *testing.T) {
	sale := SaleFromDocument(Document{})

	assert.Empty(t, sale.ID)
	assert.True(t, sale.TotalAmount.IsZero())
	// Nothing owed on a zero-amount record counts as paid
	assert.Equal(t, PaymentStatusPaid, sale.PaymentStatus)
}

func TestSaleFromDocument_KeepsValidStoredStatus(t *testing.T) {
	doc := Document{
		"_id":            "sale-2",
		"client":         "bob",
		"total_amount":   100.0,
		"amount_paid":    100.0,
		"payment_status": "unpaid", // stale but valid, kept as stored
	}

	sale := SaleFromDocument(doc)
	assert.Equal(t, PaymentStatusUnpaid, sale.PaymentStatus)
}

// ============================================
// Other Decoder Tests
// ============================================

func TestDebtFromDocument(t *testing.T) {
	doc := Document{
		"_id":              "debt-1",
		"client":           "carol",
		"product_id":       "prod-2",
		"sale_id":          "sale-9",
		"amount":           "5,500",
		"last_paid_amount": nil,
	}

	debt := DebtFromDocument(doc)

	assert.Equal(t, "debt-1", debt.ID)
	assert.Equal(t, "sale-9", debt.SaleID)
	assert.True(t, decimal.NewFromInt(5500).Equal(debt.Amount))
	assert.True(t, debt.LastPaidAmount.IsZero())
}

func TestExpenseFromDocument(t *testing.T) {
	doc := Document{
		"_id":      "exp-1",
		"category": "Transport",
		"amount":   1250.75,
		"payee":    "Garage",
	}

	expense := ExpenseFromDocument(doc)

	assert.Equal(t, "Transport", expense.Category)
	assert.True(t, decimal.NewFromFloat(1250.75).Equal(expense.Amount))
	assert.Equal(t, "Garage", expense.Payee)
}

func TestDecodeAll(t *testing.T) {
	docs := []Document{
		{"_id": "d1", "amount": 100.0},
		{"_id": "d2", "amount": "200"},
	}

	debts := DecodeAll(docs, DebtFromDocument)
	assert.Len(t, debts, 2)
	assert.Equal(t, "d1", debts[0].ID)
	assert.True(t, decimal.NewFromInt(200).Equal(debts[1].Amount))

	assert.Empty(t, DecodeAll(nil, DebtFromDocument))
}
