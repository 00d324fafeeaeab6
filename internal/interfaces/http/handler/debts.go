package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rml/bookkeeper/internal/application/datacache"
	"github.com/rml/bookkeeper/internal/application/ledgersvc"
	"github.com/rml/bookkeeper/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
)

// DebtsHandler handles the debts endpoints
type DebtsHandler struct {
	BaseHandler
	debts  *ledgersvc.DebtService
	caches *datacache.Manager
}

// NewDebtsHandler creates the handler
func NewDebtsHandler(debts *ledgersvc.DebtService, caches *datacache.Manager) *DebtsHandler {
	return &DebtsHandler{debts: debts, caches: caches}
}

// List returns the live debts snapshot
func (h *DebtsHandler) List(c *gin.Context) {
	debts, err := h.caches.Acquire(c.Request.Context(), userID(c)).Debts()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, debts)
}

// RecordPayment applies a payment to a debt
func (h *DebtsHandler) RecordPayment(c *gin.Context) {
	var req dto.DebtPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	debt, err := h.debts.RecordPayment(c.Request.Context(), userID(c), c.Param("id"),
		decimal.NewFromFloat(req.Amount))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, debt)
}

// Delete removes a debt record
func (h *DebtsHandler) Delete(c *gin.Context) {
	if err := h.debts.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
