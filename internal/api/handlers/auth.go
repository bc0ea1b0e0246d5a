package handlers

import (
	"net/http"
	"time"

	"solarsmart/internal/api/models"
	"solarsmart/internal/auth"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service      *auth.Service
	cookieSecure bool
}

func NewAuthHandler(service *auth.Service, cookieSecure bool) *AuthHandler {
	return &AuthHandler{service: service, cookieSecure: cookieSecure}
}

// Login handles POST /api/v1/admin/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	token, exp, err := h.service.Login(req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	maxAge := int(time.Until(exp).Seconds())
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(auth.SessionCookie, token, maxAge, "/", "", h.cookieSecure, true)
	c.JSON(http.StatusOK, models.LoginResponse{Token: token, ExpiresAt: exp})
}

// Logout handles POST /api/v1/admin/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(auth.SessionCookie, "", -1, "/", "", h.cookieSecure, true)
	c.Status(http.StatusNoContent)
}
