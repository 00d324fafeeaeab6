package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rml/bookkeeper/internal/application/reportsvc"
	"github.com/rml/bookkeeper/internal/domain/report"
	"github.com/rml/bookkeeper/internal/interfaces/http/dto"
)

// ReportsHandler renders report documents and serves the dashboard numbers
type ReportsHandler struct {
	BaseHandler
	reports       *reportsvc.Service
	defaultPeriod string
}

// NewReportsHandler creates the handler. defaultPeriod is the filter applied
// to dashboard requests that carry none.
func NewReportsHandler(reports *reportsvc.Service, defaultPeriod string) *ReportsHandler {
	return &ReportsHandler{reports: reports, defaultPeriod: defaultPeriod}
}

func (h *ReportsHandler) dashboardFilter(q dto.PeriodQuery) report.DateFilter {
	if q.Filter == "" {
		q.Filter = h.defaultPeriod
	}
	return periodFilter(q)
}

func (h *ReportsHandler) servePDF(c *gin.Context, result *reportsvc.Result, err error) {
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, "application/pdf", result.Data)
}

// Debts renders the outstanding debts report
func (h *ReportsHandler) Debts(c *gin.Context) {
	var q dto.PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	result, err := h.reports.DebtsReport(c.Request.Context(), userID(c), periodFilter(q))
	h.servePDF(c, result, err)
}

// Expenses renders the expenses report
func (h *ReportsHandler) Expenses(c *gin.Context) {
	var q dto.PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	result, err := h.reports.ExpensesReport(c.Request.Context(), userID(c), periodFilter(q))
	h.servePDF(c, result, err)
}

// Supplies renders the supplies report
func (h *ReportsHandler) Supplies(c *gin.Context) {
	var q dto.PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	result, err := h.reports.SuppliesReport(c.Request.Context(), userID(c), periodFilter(q))
	h.servePDF(c, result, err)
}

// QuickStats returns the dashboard headline for a period
func (h *ReportsHandler) QuickStats(c *gin.Context) {
	var q dto.PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	stats, err := h.reports.QuickStats(c.Request.Context(), userID(c), h.dashboardFilter(q))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// ExpenseBreakdown returns expenses grouped by category for a period
func (h *ReportsHandler) ExpenseBreakdown(c *gin.Context) {
	var q dto.PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	breakdown, err := h.reports.CategoryBreakdown(c.Request.Context(), userID(c), h.dashboardFilter(q))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, breakdown)
}

// DebtSummary returns the debt metrics for a period
func (h *ReportsHandler) DebtSummary(c *gin.Context) {
	var q dto.PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	summary, err := h.reports.DebtSummary(c.Request.Context(), userID(c), h.dashboardFilter(q))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}
