package ledger

import (
	"time"

	"github.com/rml/bookkeeper/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Reference entities: clients, products, expense categories and bank deposits.
// These carry no derived invariants beyond basic field validation.

// Client is a customer the business sells to
type Client struct {
	shared.BaseEntity `bson:",inline"`
	Name              string `bson:"name" json:"name"`
	Phone             string `bson:"phone,omitempty" json:"phone,omitempty"`
}

// NewClient creates a new client
func NewClient(name, phone string) (*Client, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Client name cannot be empty")
	}
	return &Client{BaseEntity: shared.NewBaseEntity(), Name: name, Phone: phone}, nil
}

// Product is a sellable product with a default unit price
type Product struct {
	shared.BaseEntity `bson:",inline"`
	Name              string          `bson:"name" json:"name"`
	Price             decimal.Decimal `bson:"price" json:"price"`
}

// NewProduct creates a new product
func NewProduct(name string, price decimal.Decimal) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}
	return &Product{BaseEntity: shared.NewBaseEntity(), Name: name, Price: price}, nil
}

// Category is an expense category
type Category struct {
	shared.BaseEntity `bson:",inline"`
	Name              string `bson:"name" json:"name"`
}

// NewCategory creates a new expense category
func NewCategory(name string) (*Category, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	return &Category{BaseEntity: shared.NewBaseEntity(), Name: name}, nil
}

// BankDeposit records cash banked from the till
type BankDeposit struct {
	shared.BaseEntity `bson:",inline"`
	Amount            decimal.Decimal `bson:"amount" json:"amount"`
	DepositedBy       string          `bson:"deposited_by,omitempty" json:"deposited_by,omitempty"`
	Reference         string          `bson:"reference,omitempty" json:"reference,omitempty"`
	Date              time.Time       `bson:"date" json:"date"`
}

// NewBankDeposit creates a new bank deposit record
func NewBankDeposit(amount decimal.Decimal, depositedBy, reference string, date time.Time) (*BankDeposit, error) {
	if !amount.GreaterThan(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Deposit amount must be positive")
	}
	if date.IsZero() {
		date = time.Now()
	}
	return &BankDeposit{
		BaseEntity:  shared.NewBaseEntity(),
		Amount:      amount,
		DepositedBy: depositedBy,
		Reference:   reference,
		Date:        date,
	}, nil
}
