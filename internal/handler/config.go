package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"worldmarket/internal/service"
)

// ConfigHandler handles HTTP requests for platform configuration.
type ConfigHandler struct {
	configService *service.ConfigService
}

// NewConfigHandler creates a new ConfigHandler.
func NewConfigHandler(configService *service.ConfigService) *ConfigHandler {
	return &ConfigHandler{configService: configService}
}

// GetListingFee handles GET /api/config/listing-fee
func (h *ConfigHandler) GetListingFee(c *gin.Context) {
	fee, err := h.configService.GetListingFee(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, fee)
}

// GetSupportContact handles GET /api/config/support-contact
func (h *ConfigHandler) GetSupportContact(c *gin.Context) {
	contact, err := h.configService.GetSupportContact(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, contact)
}

// SetConfigRequest is the HTTP request body for a config upsert.
type SetConfigRequest struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// Set handles PUT /v1/admin/config
func (h *ConfigHandler) Set(c *gin.Context) {
	var req SetConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Key == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.configService.SetConfig(c.Request.Context(), req.Key, req.Value); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"status": "ok"})
}
