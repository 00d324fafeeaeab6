package ledger

import (
	"github.com/rml/bookkeeper/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Expense is a recorded business expense
type Expense struct {
	shared.BaseEntity `bson:",inline"`
	Category          string          `bson:"category" json:"category"`
	Amount            decimal.Decimal `bson:"amount" json:"amount"`
	Description       string          `bson:"description,omitempty" json:"description,omitempty"`
	Payee             string          `bson:"payee,omitempty" json:"payee,omitempty"`
}

// NewExpense creates a new expense record
func NewExpense(category string, amount decimal.Decimal, description, payee string) (*Expense, error) {
	if category == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Expense category cannot be empty")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Expense amount cannot be negative")
	}
	return &Expense{
		BaseEntity:  shared.NewBaseEntity(),
		Category:    category,
		Amount:      amount,
		Description: description,
		Payee:       payee,
	}, nil
}

// Update replaces the expense details
func (e *Expense) Update(category string, amount decimal.Decimal, description, payee string) error {
	if category == "" {
		return shared.NewDomainError("INVALID_CATEGORY", "Expense category cannot be empty")
	}
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Expense amount cannot be negative")
	}
	e.Category = category
	e.Amount = amount
	e.Description = description
	e.Payee = payee
	e.Touch()
	return nil
}
