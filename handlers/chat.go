package handlers

import (
	"net/http"
	"strings"
	"time"

	conversationRepo "tallerchat/database/repository/conversation"
	registryRepo "tallerchat/database/repository/registry"
	"tallerchat/models"
	"tallerchat/services/chat"
	"tallerchat/services/shop"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	clientSearchMinChars = 2
	searchResultLimit    = 10
	indexPanelLimit      = 5
)

// ChatHandler exposes the conversational endpoints.
type ChatHandler struct {
	Processor     chat.MessageProcessor
	Conversations conversationRepo.ConversationRepository
	Registry      registryRepo.RegistryRepository
	Catalog       shop.CatalogService
	Now           func() time.Time
}

func NewChatHandler(
	processor chat.MessageProcessor,
	conversations conversationRepo.ConversationRepository,
	registry registryRepo.RegistryRepository,
	catalog shop.CatalogService,
) *ChatHandler {
	return &ChatHandler{
		Processor:     processor,
		Conversations: conversations,
		Registry:      registry,
		Catalog:       catalog,
	}
}

func (h *ChatHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// IndexHandler returns everything the chat screen needs on load: today's
// message log plus the recent-records and popular-services side panels.
func (h *ChatHandler) IndexHandler(c *gin.Context) {
	logger := getLogger(c)
	ctx := c.Request.Context()
	shopID := shopIDFrom(c)

	conv, err := h.Conversations.ActiveForShop(ctx, shopID)
	if err != nil {
		logger.Error("Failed to load conversation", zap.String("shopID", shopID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load chat"})
		return
	}

	messages := conv.MessagesToday(h.now())
	if messages == nil {
		messages = []models.ChatMessage{}
	}

	recent, err := h.Registry.RecentRecords(ctx, shopID, indexPanelLimit)
	if err != nil {
		logger.Warn("Failed to load recent records", zap.String("shopID", shopID), zap.Error(err))
		recent = []models.ServiceRecord{}
	}

	popular, err := h.Catalog.Popular(ctx, shopID, indexPanelLimit)
	if err != nil {
		logger.Warn("Failed to load popular services", zap.String("shopID", shopID), zap.Error(err))
		popular = []models.ServiceDefinition{}
	}

	c.JSON(http.StatusOK, gin.H{
		"messages":        messages,
		"recentRecords":   recent,
		"popularServices": popular,
	})
}

// MessageHandler feeds one user message through the chat engine.
func (h *ChatHandler) MessageHandler(c *gin.Context) {
	logger := getLogger(c)
	shopID := shopIDFrom(c)

	var req struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid chat request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "El mensaje no puede estar vacío"})
		return
	}

	result := h.Processor.Process(c.Request.Context(), shopID, message)

	now := h.now()
	c.JSON(http.StatusOK, gin.H{
		"success": result.Success,
		"userMessage": models.ChatMessage{
			Role:      "user",
			Content:   message,
			Timestamp: now,
		},
		"assistantMessage": models.ChatMessage{
			Role:      "assistant",
			Content:   result.Response,
			Action:    result.Action,
			Timestamp: now,
		},
		"action": result.Action,
		"data":   result.Data,
	})
}

// SearchClientsHandler backs the client-name typeahead.
func (h *ChatHandler) SearchClientsHandler(c *gin.Context) {
	logger := getLogger(c)
	shopID := shopIDFrom(c)

	query := strings.TrimSpace(c.Query("q"))
	if len([]rune(query)) < clientSearchMinChars {
		c.JSON(http.StatusOK, gin.H{"clients": []models.Client{}})
		return
	}

	clients, err := h.Registry.SearchClients(c.Request.Context(), shopID, query, searchResultLimit)
	if err != nil {
		logger.Error("Client search failed", zap.String("shopID", shopID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}
	if clients == nil {
		clients = []models.Client{}
	}
	c.JSON(http.StatusOK, gin.H{"clients": clients})
}

// SearchServicesHandler backs the catalog typeahead.
func (h *ChatHandler) SearchServicesHandler(c *gin.Context) {
	logger := getLogger(c)
	shopID := shopIDFrom(c)

	query := strings.TrimSpace(c.Query("q"))
	if len([]rune(query)) < clientSearchMinChars {
		c.JSON(http.StatusOK, gin.H{"services": []models.ServiceDefinition{}})
		return
	}

	services, err := h.Catalog.Search(c.Request.Context(), shopID, query, searchResultLimit)
	if err != nil {
		logger.Error("Service search failed", zap.String("shopID", shopID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}
	if services == nil {
		services = []models.ServiceDefinition{}
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

// QuickRegisterHandler records a catalog entry at list price with one tap.
func (h *ChatHandler) QuickRegisterHandler(c *gin.Context) {
	logger := getLogger(c)
	shopID := shopIDFrom(c)

	var req struct {
		ServiceID string `json:"serviceId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid quick register request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	record, message, err := h.Catalog.QuickRegister(c.Request.Context(), shopID, req.ServiceID)
	if err != nil {
		logger.Error("Quick register failed",
			zap.String("shopID", shopID),
			zap.String("serviceID", req.ServiceID),
			zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "No se pudo registrar el servicio"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"record":  record,
	})
}
