package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rml/bookkeeper/internal/application/datacache"
	"github.com/rml/bookkeeper/internal/application/ledgersvc"
	"github.com/rml/bookkeeper/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
)

// SalesHandler handles the sales endpoints
type SalesHandler struct {
	BaseHandler
	sales  *ledgersvc.SaleService
	caches *datacache.Manager
}

// NewSalesHandler creates the handler
func NewSalesHandler(sales *ledgersvc.SaleService, caches *datacache.Manager) *SalesHandler {
	return &SalesHandler{sales: sales, caches: caches}
}

func saleInput(req dto.SaleRequest) (ledgersvc.CreateSaleInput, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return ledgersvc.CreateSaleInput{}, err
	}
	return ledgersvc.CreateSaleInput{
		Client:     req.Client,
		ProductID:  req.ProductID,
		Quantity:   req.Quantity,
		UnitPrice:  decimal.NewFromFloat(req.UnitPrice),
		Discount:   decimal.NewFromFloat(req.Discount),
		SupplyType: req.SupplyType,
		AmountPaid: decimal.NewFromFloat(req.AmountPaid),
		Date:       date,
	}, nil
}

// List returns the live sales snapshot
func (h *SalesHandler) List(c *gin.Context) {
	sales, err := h.caches.Acquire(c.Request.Context(), userID(c)).Sales()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sales)
}

// Create records a sale
func (h *SalesHandler) Create(c *gin.Context) {
	var req dto.SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	input, err := saleInput(req)
	if err != nil {
		h.BadRequest(c, "date must be yyyy-MM-dd")
		return
	}
	sale, err := h.sales.Create(c.Request.Context(), userID(c), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sale)
}

// Update revises a sale
func (h *SalesHandler) Update(c *gin.Context) {
	var req dto.SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	input, err := saleInput(req)
	if err != nil {
		h.BadRequest(c, "date must be yyyy-MM-dd")
		return
	}
	sale, err := h.sales.Update(c.Request.Context(), userID(c), c.Param("id"), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// Delete removes a sale and its debt
func (h *SalesHandler) Delete(c *gin.Context) {
	if err := h.sales.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
