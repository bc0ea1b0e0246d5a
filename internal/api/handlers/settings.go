package handlers

import (
	"net/http"

	"solarsmart/internal/api/models"
	"solarsmart/internal/settings"

	"github.com/gin-gonic/gin"
)

// SettingsHandler exposes the business settings to the admin panel
type SettingsHandler struct {
	service *settings.Service
}

func NewSettingsHandler(service *settings.Service) *SettingsHandler {
	return &SettingsHandler{service: service}
}

// GetSettings handles GET /api/v1/admin/settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	s, err := h.service.Current(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// UpdateSettings handles PUT /api/v1/admin/settings
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req models.SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	s, err := h.service.Update(c.Request.Context(), req.ToSettings())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}
