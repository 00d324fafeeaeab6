package ledger

import (
	"github.com/rml/bookkeeper/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Debt tracks the outstanding balance a client owes on a sale.
// At most one open debt exists per originating sale.
type Debt struct {
	shared.BaseEntity `bson:",inline"`
	Client            string          `bson:"client" json:"client"`
	ProductID         string          `bson:"product_id" json:"product_id"`
	SaleID            string          `bson:"sale_id,omitempty" json:"sale_id,omitempty"`
	Amount            decimal.Decimal `bson:"amount" json:"amount"`
	LastPaidAmount    decimal.Decimal `bson:"last_paid_amount" json:"last_paid_amount"`
}

// NewDebtForSale creates the debt left behind by an underpaid sale
func NewDebtForSale(sale *Sale) (*Debt, error) {
	if sale == nil {
		return nil, shared.ErrInvalidInput
	}
	outstanding := sale.Outstanding()
	if !outstanding.GreaterThan(decimal.Zero) {
		return nil, shared.NewDomainError("NO_OUTSTANDING", "Sale is fully paid, no debt to create")
	}
	return &Debt{
		BaseEntity: shared.NewBaseEntity(),
		Client:     sale.Client,
		ProductID:  sale.Product.ProductID,
		SaleID:     sale.ID,
		Amount:     outstanding,
	}, nil
}

// ApplyPayment reduces the outstanding balance and records the payment amount
func (d *Debt) ApplyPayment(amount decimal.Decimal) error {
	if !amount.GreaterThan(decimal.Zero) {
		return shared.NewDomainError("INVALID_PAYMENT", "Payment amount must be positive")
	}
	if amount.GreaterThan(d.Amount) {
		return shared.NewDomainError("INVALID_PAYMENT", "Payment cannot exceed the outstanding balance")
	}
	d.Amount = d.Amount.Sub(amount)
	d.LastPaidAmount = amount
	d.Touch()
	return nil
}

// IsSettled reports whether the debt has been paid down to zero
func (d *Debt) IsSettled() bool {
	return !d.Amount.GreaterThan(decimal.Zero)
}
