package ledger

import (
	"time"

	"github.com/rml/bookkeeper/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Document is one raw record from a collection snapshot. Fields are loosely
// typed; the FromDocument decoders below coerce them so that malformed source
// data degrades to zero values instead of failing a report.
type Document map[string]any

// String returns the named field coerced to a string
func (d Document) String(key string) string {
	return CoerceString(d[key])
}

// Decimal returns the named field coerced to a decimal amount
func (d Document) Decimal(key string) decimal.Decimal {
	return CoerceDecimal(d[key])
}

// Int returns the named field coerced to an int
func (d Document) Int(key string) int {
	return CoerceInt(d[key])
}

// Time returns the named field coerced to a timestamp
func (d Document) Time(key string) (time.Time, bool) {
	return CoerceTime(d[key])
}

// Child returns a nested document, or an empty one if absent
func (d Document) Child(key string) Document {
	switch v := d[key].(type) {
	case Document:
		return v
	case map[string]any:
		return Document(v)
	default:
		return Document{}
	}
}

func (d Document) baseEntity() shared.BaseEntity {
	created, _ := d.Time("created_at")
	updated, _ := d.Time("updated_at")
	return shared.BaseEntity{
		ID:        d.String("_id"),
		CreatedAt: created,
		UpdatedAt: updated,
	}
}

// SaleFromDocument decodes a raw sale record. The payment status is re-derived
// when the stored value is missing or invalid.
func SaleFromDocument(d Document) Sale {
	line := d.Child("product")
	date, _ := d.Time("date")
	sale := Sale{
		BaseEntity: d.baseEntity(),
		Client:     d.String("client"),
		Product: ProductLine{
			ProductID:  line.String("product_id"),
			Quantity:   line.Int("quantity"),
			UnitPrice:  line.Decimal("unit_price"),
			Discount:   line.Decimal("discount"),
			SupplyType: line.String("supply_type"),
		},
		TotalAmount: d.Decimal("total_amount"),
		AmountPaid:  d.Decimal("amount_paid"),
		Date:        date,
	}
	sale.PaymentStatus = PaymentStatus(d.String("payment_status"))
	if !sale.PaymentStatus.IsValid() {
		sale.PaymentStatus = DerivePaymentStatus(sale.AmountPaid, sale.TotalAmount)
	}
	return sale
}

// DebtFromDocument decodes a raw debt record
func DebtFromDocument(d Document) Debt {
	return Debt{
		BaseEntity:     d.baseEntity(),
		Client:         d.String("client"),
		ProductID:      d.String("product_id"),
		SaleID:         d.String("sale_id"),
		Amount:         d.Decimal("amount"),
		LastPaidAmount: d.Decimal("last_paid_amount"),
	}
}

// ExpenseFromDocument decodes a raw expense record
func ExpenseFromDocument(d Document) Expense {
	return Expense{
		BaseEntity:  d.baseEntity(),
		Category:    d.String("category"),
		Amount:      d.Decimal("amount"),
		Description: d.String("description"),
		Payee:       d.String("payee"),
	}
}

// SupplyFromDocument decodes a raw supply record
func SupplyFromDocument(d Document) Supply {
	date, _ := d.Time("date")
	return Supply{
		BaseEntity: d.baseEntity(),
		ProductID:  d.String("product_id"),
		SupplyType: d.String("supply_type"),
		Quantity:   d.Int("quantity"),
		Date:       date,
	}
}

// ClientFromDocument decodes a raw client record
func ClientFromDocument(d Document) Client {
	return Client{
		BaseEntity: d.baseEntity(),
		Name:       d.String("name"),
		Phone:      d.String("phone"),
	}
}

// ProductFromDocument decodes a raw product record
func ProductFromDocument(d Document) Product {
	return Product{
		BaseEntity: d.baseEntity(),
		Name:       d.String("name"),
		Price:      d.Decimal("price"),
	}
}

// CategoryFromDocument decodes a raw category record
func CategoryFromDocument(d Document) Category {
	return Category{
		BaseEntity: d.baseEntity(),
		Name:       d.String("name"),
	}
}

// BankDepositFromDocument decodes a raw bank deposit record
func BankDepositFromDocument(d Document) BankDeposit {
	date, _ := d.Time("date")
	return BankDeposit{
		BaseEntity:  d.baseEntity(),
		Amount:      d.Decimal("amount"),
		DepositedBy: d.String("deposited_by"),
		Reference:   d.String("reference"),
		Date:        date,
	}
}

// DecodeAll maps a snapshot of raw documents through a decoder
func DecodeAll[T any](docs []Document, decode func(Document) T) []T {
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		out = append(out, decode(d))
	}
	return out
}
