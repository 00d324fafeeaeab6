package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rml/bookkeeper/internal/application/datacache"
	"github.com/rml/bookkeeper/internal/application/ledgersvc"
	"github.com/rml/bookkeeper/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
)

// ReferencesHandler handles the clients, products and categories lookups
type ReferencesHandler struct {
	BaseHandler
	refs   *ledgersvc.ReferenceService
	caches *datacache.Manager
}

// NewReferencesHandler creates the handler
func NewReferencesHandler(refs *ledgersvc.ReferenceService, caches *datacache.Manager) *ReferencesHandler {
	return &ReferencesHandler{refs: refs, caches: caches}
}

// ListClients returns the live clients snapshot
func (h *ReferencesHandler) ListClients(c *gin.Context) {
	clients, err := h.caches.Acquire(c.Request.Context(), userID(c)).Clients()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, clients)
}

// CreateClient adds a client
func (h *ReferencesHandler) CreateClient(c *gin.Context) {
	var req dto.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	client, err := h.refs.CreateClient(c.Request.Context(), userID(c), req.Name, req.Phone)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, client)
}

// DeleteClient removes a client
func (h *ReferencesHandler) DeleteClient(c *gin.Context) {
	if err := h.refs.DeleteClient(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListProducts returns the live products snapshot
func (h *ReferencesHandler) ListProducts(c *gin.Context) {
	products, err := h.caches.Acquire(c.Request.Context(), userID(c)).Products()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// CreateProduct adds a product
func (h *ReferencesHandler) CreateProduct(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	product, err := h.refs.CreateProduct(c.Request.Context(), userID(c),
		req.Name, decimal.NewFromFloat(req.Price))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// DeleteProduct removes a product
func (h *ReferencesHandler) DeleteProduct(c *gin.Context) {
	if err := h.refs.DeleteProduct(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListCategories returns the live categories snapshot
func (h *ReferencesHandler) ListCategories(c *gin.Context) {
	categories, err := h.caches.Acquire(c.Request.Context(), userID(c)).Categories()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// CreateCategory adds an expense category
func (h *ReferencesHandler) CreateCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	category, err := h.refs.CreateCategory(c.Request.Context(), userID(c), req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, category)
}

// DeleteCategory removes an expense category
func (h *ReferencesHandler) DeleteCategory(c *gin.Context) {
	if err := h.refs.DeleteCategory(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
