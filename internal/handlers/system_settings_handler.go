package handlers

import (
	"net/http"

	"github.com/giftwheel/giveaway-backend/internal/models"
	"github.com/giftwheel/giveaway-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// SystemSettingsHandler handles system settings-related HTTP requests
type SystemSettingsHandler struct {
	settingsService services.SystemSettingsService
}

// NewSystemSettingsHandler creates a new SystemSettingsHandler
func NewSystemSettingsHandler(settingsService services.SystemSettingsService) *SystemSettingsHandler {
	return &SystemSettingsHandler{
		settingsService: settingsService,
	}
}

// GetSettings handles GET /settings
func (h *SystemSettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get settings: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSettings handles PUT /settings
func (h *SystemSettingsHandler) UpdateSettings(c *gin.Context) {
	var settings models.SystemSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.settingsService.UpdateSettings(c.Request.Context(), &settings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateChatGateway handles PUT /settings/chat-gateway
func (h *SystemSettingsHandler) UpdateChatGateway(c *gin.Context) {
	var request struct {
		Gateway string `json:"gateway" binding:"required,oneof=WEBHOOK MOCK"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userEmail, exists := c.Get("userEmail")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.settingsService.UpdateChatGateway(c.Request.Context(), request.Gateway, userEmail.(string)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update chat gateway: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Chat gateway updated successfully"})
}
