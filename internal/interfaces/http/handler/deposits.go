package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rml/bookkeeper/internal/application/datacache"
	"github.com/rml/bookkeeper/internal/application/ledgersvc"
	"github.com/rml/bookkeeper/internal/domain/ledger"
	"github.com/rml/bookkeeper/internal/domain/report"
	"github.com/rml/bookkeeper/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
)

// DepositsHandler handles the bank deposits endpoints
type DepositsHandler struct {
	BaseHandler
	deposits *ledgersvc.DepositService
	caches   *datacache.Manager
}

// NewDepositsHandler creates the handler
func NewDepositsHandler(deposits *ledgersvc.DepositService, caches *datacache.Manager) *DepositsHandler {
	return &DepositsHandler{deposits: deposits, caches: caches}
}

// List returns the live deposits snapshot, optionally narrowed to a period
func (h *DepositsHandler) List(c *gin.Context) {
	var q dto.PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	deposits, err := h.caches.Acquire(c.Request.Context(), userID(c)).BankDeposits()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	deposits = report.FilterByDate(deposits, func(d ledger.BankDeposit) (time.Time, bool) {
		return d.Date, !d.Date.IsZero()
	}, periodFilter(q), time.Now())
	h.Success(c, deposits)
}

// Create records a bank deposit
func (h *DepositsHandler) Create(c *gin.Context) {
	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		h.BadRequest(c, "date must be yyyy-MM-dd")
		return
	}
	deposit, err := h.deposits.Create(c.Request.Context(), userID(c),
		decimal.NewFromFloat(req.Amount), req.DepositedBy, req.Reference, date)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, deposit)
}

// Delete removes a deposit record
func (h *DepositsHandler) Delete(c *gin.Context) {
	if err := h.deposits.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
