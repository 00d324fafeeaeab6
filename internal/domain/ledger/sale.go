package ledger

import (
	"time"

	"github.com/rml/bookkeeper/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents how much of a sale has been settled
type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusUnpaid, PaymentStatusPartial, PaymentStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// DerivePaymentStatus computes the payment status from the paid/total relation.
// paid iff amountPaid >= totalAmount; partial iff 0 < amountPaid < totalAmount;
// unpaid otherwise.
func DerivePaymentStatus(amountPaid, totalAmount decimal.Decimal) PaymentStatus {
	if amountPaid.GreaterThanOrEqual(totalAmount) {
		return PaymentStatusPaid
	}
	if amountPaid.GreaterThan(decimal.Zero) {
		return PaymentStatusPartial
	}
	return PaymentStatusUnpaid
}

// ProductLine is the single product line embedded in a sale
type ProductLine struct {
	ProductID  string          `bson:"product_id" json:"product_id"`
	Quantity   int             `bson:"quantity" json:"quantity"`
	UnitPrice  decimal.Decimal `bson:"unit_price" json:"unit_price"`
	Discount   decimal.Decimal `bson:"discount" json:"discount"`
	SupplyType string          `bson:"supply_type,omitempty" json:"supply_type,omitempty"`
}

// Subtotal returns quantity * unitPrice before discount
func (l ProductLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Sale represents a recorded sale to a client
type Sale struct {
	shared.BaseEntity `bson:",inline"`
	Client            string          `bson:"client" json:"client"`
	Product           ProductLine     `bson:"product" json:"product"`
	TotalAmount       decimal.Decimal `bson:"total_amount" json:"total_amount"`
	AmountPaid        decimal.Decimal `bson:"amount_paid" json:"amount_paid"`
	PaymentStatus     PaymentStatus   `bson:"payment_status" json:"payment_status"`
	Date              time.Time       `bson:"date" json:"date"`
}

// NewSale creates a sale, computing the total amount and deriving the payment
// status from the amount paid.
func NewSale(client string, line ProductLine, amountPaid decimal.Decimal, date time.Time) (*Sale, error) {
	if client == "" {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client name cannot be empty")
	}
	if line.ProductID == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product is required")
	}
	if line.Quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if line.UnitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_UNIT_PRICE", "Unit price cannot be negative")
	}
	if line.Discount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}

	total := line.Subtotal().Sub(line.Discount)
	if total.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot exceed the subtotal")
	}
	if amountPaid.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT_PAID", "Amount paid cannot be negative")
	}
	if amountPaid.GreaterThan(total) {
		return nil, shared.NewDomainError("INVALID_AMOUNT_PAID", "Amount paid cannot exceed the total amount")
	}
	if date.IsZero() {
		date = time.Now()
	}

	return &Sale{
		BaseEntity:    shared.NewBaseEntity(),
		Client:        client,
		Product:       line,
		TotalAmount:   total,
		AmountPaid:    amountPaid,
		PaymentStatus: DerivePaymentStatus(amountPaid, total),
		Date:          date,
	}, nil
}

// Outstanding returns the unpaid remainder of the sale
func (s *Sale) Outstanding() decimal.Decimal {
	return s.TotalAmount.Sub(s.AmountPaid)
}

// HasOutstanding reports whether the sale leaves a debt behind
func (s *Sale) HasOutstanding() bool {
	return s.Outstanding().GreaterThan(decimal.Zero)
}

// MarkFullyPaid sets the amount paid to the total and re-derives the status
func (s *Sale) MarkFullyPaid() {
	s.AmountPaid = s.TotalAmount
	s.PaymentStatus = DerivePaymentStatus(s.AmountPaid, s.TotalAmount)
	s.Touch()
}

// Revise replaces the sale's line and payment details, recomputing derived fields
func (s *Sale) Revise(client string, line ProductLine, amountPaid decimal.Decimal, date time.Time) error {
	revised, err := NewSale(client, line, amountPaid, date)
	if err != nil {
		return err
	}
	s.Client = revised.Client
	s.Product = revised.Product
	s.TotalAmount = revised.TotalAmount
	s.AmountPaid = revised.AmountPaid
	s.PaymentStatus = revised.PaymentStatus
	s.Date = revised.Date
	s.Touch()
	return nil
}
