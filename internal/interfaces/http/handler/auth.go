package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rml/bookkeeper/internal/application/datacache"
	"github.com/rml/bookkeeper/internal/application/identitysvc"
	"github.com/rml/bookkeeper/internal/interfaces/http/dto"
)

// AuthHandler handles registration, login and logout
type AuthHandler struct {
	BaseHandler
	identity *identitysvc.Service
	caches   *datacache.Manager
}

// NewAuthHandler creates the handler
func NewAuthHandler(identity *identitysvc.Service, caches *datacache.Manager) *AuthHandler {
	return &AuthHandler{identity: identity, caches: caches}
}

// Register creates an account
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	account, err := h.identity.Register(c.Request.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, gin.H{
		"id":    account.ID,
		"email": account.Email,
		"name":  account.Name,
	})
}

// Login verifies credentials, issues a token and warms the user's cache
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	token, account, err := h.identity.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	// Start the live subscriptions now so the first data read is warm.
	h.caches.Acquire(context.Background(), account.ID)

	h.Success(c, gin.H{
		"token": token,
		"account": gin.H{
			"id":    account.ID,
			"email": account.Email,
			"name":  account.Name,
		},
	})
}

// Logout drops the user's live cache and subscriptions
func (h *AuthHandler) Logout(c *gin.Context) {
	h.caches.Release(userID(c))
	h.NoContent(c)
}
