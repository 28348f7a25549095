package handlers

import (
	"errors"
	"net/http"

	"tallerchat/services/shop"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler exposes shop account endpoints.
type AuthHandler struct {
	Shops shop.ShopService
}

func NewAuthHandler(shops shop.ShopService) *AuthHandler {
	return &AuthHandler{Shops: shops}
}

type credentialsRequest struct {
	Name string `json:"name" binding:"required"`
	PIN  string `json:"pin" binding:"required"`
}

// RegisterShopHandler creates a shop account and returns its first token.
func (h *AuthHandler) RegisterShopHandler(c *gin.Context) {
	logger := getLogger(c)

	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid registration request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	registered, token, err := h.Shops.Register(c.Request.Context(), req.Name, req.PIN)
	if err != nil {
		logger.Error("Shop registration failed", zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"shop": registered, "token": token})
}

// LoginShopHandler authenticates a shop by name and PIN.
func (h *AuthHandler) LoginShopHandler(c *gin.Context) {
	logger := getLogger(c)

	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	authenticated, token, err := h.Shops.Authenticate(c.Request.Context(), req.Name, req.PIN)
	if err != nil {
		if errors.Is(err, shop.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid name or PIN"})
			return
		}
		logger.Error("Shop login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"shop": authenticated, "token": token})
}

// LogoutShopHandler revokes the active session of the authenticated shop.
func (h *AuthHandler) LogoutShopHandler(c *gin.Context) {
	logger := getLogger(c)
	shopID := shopIDFrom(c)

	if err := h.Shops.Logout(c.Request.Context(), shopID); err != nil {
		logger.Error("Shop logout failed", zap.String("shopID", shopID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
