package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rml/bookkeeper/internal/application/datacache"
	"github.com/rml/bookkeeper/internal/application/ledgersvc"
	"github.com/rml/bookkeeper/internal/interfaces/http/dto"
)

// SuppliesHandler handles the supplies endpoints
type SuppliesHandler struct {
	BaseHandler
	supplies *ledgersvc.SupplyService
	caches   *datacache.Manager
}

// NewSuppliesHandler creates the handler
func NewSuppliesHandler(supplies *ledgersvc.SupplyService, caches *datacache.Manager) *SuppliesHandler {
	return &SuppliesHandler{supplies: supplies, caches: caches}
}

// List returns the live supplies snapshot
func (h *SuppliesHandler) List(c *gin.Context) {
	supplies, err := h.caches.Acquire(c.Request.Context(), userID(c)).Supplies()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, supplies)
}

// Create records a supply delivery
func (h *SuppliesHandler) Create(c *gin.Context) {
	var req dto.SupplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		h.BadRequest(c, "date must be yyyy-MM-dd")
		return
	}
	supply, err := h.supplies.Create(c.Request.Context(), userID(c),
		req.ProductID, req.SupplyType, req.Quantity, date)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, supply)
}

// Delete removes a supply record
func (h *SuppliesHandler) Delete(c *gin.Context) {
	if err := h.supplies.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
