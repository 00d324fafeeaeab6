package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rml/bookkeeper/internal/application/datacache"
	"github.com/rml/bookkeeper/internal/application/ledgersvc"
	"github.com/rml/bookkeeper/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
)

// ExpensesHandler handles the expenses endpoints
type ExpensesHandler struct {
	BaseHandler
	expenses *ledgersvc.ExpenseService
	caches   *datacache.Manager
}

// NewExpensesHandler creates the handler
func NewExpensesHandler(expenses *ledgersvc.ExpenseService, caches *datacache.Manager) *ExpensesHandler {
	return &ExpensesHandler{expenses: expenses, caches: caches}
}

// List returns the live expenses snapshot
func (h *ExpensesHandler) List(c *gin.Context) {
	expenses, err := h.caches.Acquire(c.Request.Context(), userID(c)).Expenses()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, expenses)
}

// Create records an expense
func (h *ExpensesHandler) Create(c *gin.Context) {
	var req dto.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	expense, err := h.expenses.Create(c.Request.Context(), userID(c),
		req.Category, decimal.NewFromFloat(req.Amount), req.Description, req.Payee)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, expense)
}

// Update revises an expense
func (h *ExpensesHandler) Update(c *gin.Context) {
	var req dto.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	expense, err := h.expenses.Update(c.Request.Context(), userID(c), c.Param("id"),
		req.Category, decimal.NewFromFloat(req.Amount), req.Description, req.Payee)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, expense)
}

// Delete removes an expense
func (h *ExpensesHandler) Delete(c *gin.Context) {
	if err := h.expenses.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
