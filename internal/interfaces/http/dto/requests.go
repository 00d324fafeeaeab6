package dto

// RegisterRequest creates an account
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest authenticates an account
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SaleRequest records or revises a sale
type SaleRequest struct {
	Client     string  `json:"client" binding:"required"`
	ProductID  string  `json:"product_id" binding:"required"`
	Quantity   int     `json:"quantity" binding:"required,gt=0"`
	UnitPrice  float64 `json:"unit_price" binding:"gte=0"`
	Discount   float64 `json:"discount" binding:"gte=0"`
	SupplyType string  `json:"supply_type"`
	AmountPaid float64 `json:"amount_paid" binding:"gte=0"`
	Date       string  `json:"date"` // yyyy-MM-dd, defaults to today
}

// DebtPaymentRequest records a payment against a debt
type DebtPaymentRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// ExpenseRequest records or revises an expense
type ExpenseRequest struct {
	Category    string  `json:"category" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Description string  `json:"description"`
	Payee       string  `json:"payee"`
}

// SupplyRequest records a stock delivery
type SupplyRequest struct {
	ProductID  string `json:"product_id" binding:"required"`
	SupplyType string `json:"supply_type" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required,gt=0"`
	Date       string `json:"date"`
}

// ClientRequest adds a client
type ClientRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
}

// ProductRequest adds a product
type ProductRequest struct {
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price" binding:"gte=0"`
}

// CategoryRequest adds an expense category
type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// DepositRequest records a bank deposit
type DepositRequest struct {
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	DepositedBy string  `json:"deposited_by"`
	Reference   string  `json:"reference"`
	Date        string  `json:"date"`
}

// PeriodQuery selects the date range for reports and dashboards
type PeriodQuery struct {
	Filter    string `form:"filter"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}
