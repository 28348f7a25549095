package handlers

import (
	"errors"
	"net/http"

	catalogRepo "tallerchat/database/repository/catalog"
	"tallerchat/services/shop"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ServicesHandler exposes the catalog management endpoints.
type ServicesHandler struct {
	Catalog shop.CatalogService
}

func NewServicesHandler(catalog shop.CatalogService) *ServicesHandler {
	return &ServicesHandler{Catalog: catalog}
}

// ListServicesHandler returns the shop's active catalog entries.
func (h *ServicesHandler) ListServicesHandler(c *gin.Context) {
	logger := getLogger(c)
	shopID := shopIDFrom(c)

	services, err := h.Catalog.List(c.Request.Context(), shopID)
	if err != nil {
		logger.Error("Failed to list services", zap.String("shopID", shopID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list services"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

// CreateServiceHandler adds an entry to the shop's catalog.
func (h *ServicesHandler) CreateServiceHandler(c *gin.Context) {
	logger := getLogger(c)
	shopID := shopIDFrom(c)

	var req struct {
		Name  string `json:"name" binding:"required"`
		Price int64  `json:"price" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid service create request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	created, err := h.Catalog.Create(c.Request.Context(), shopID, req.Name, req.Price)
	if err != nil {
		logger.Error("Failed to create service", zap.String("shopID", shopID), zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"service": created})
}

// DeactivateServiceHandler retires a catalog entry without deleting its history.
func (h *ServicesHandler) DeactivateServiceHandler(c *gin.Context) {
	logger := getLogger(c)
	shopID := shopIDFrom(c)
	serviceID := c.Param("id")

	if err := h.Catalog.Deactivate(c.Request.Context(), shopID, serviceID); err != nil {
		if errors.Is(err, catalogRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
			return
		}
		logger.Error("Failed to deactivate service",
			zap.String("shopID", shopID),
			zap.String("serviceID", serviceID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate service"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service deactivated"})
}
