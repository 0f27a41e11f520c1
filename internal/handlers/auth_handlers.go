package handlers

import (
	"errors"
	"net/http"

	"gym_backend/internal/services"
	"gym_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const invalidLoginMessage = "Usuario o contraseña incorrectos"

// AuthHandler holds the authentication service.
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as services.AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

// Login handles POST /login. Any rejected pair gets the same 401 body.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "Login: Failed to bind JSON")
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "mensaje": invalidLoginMessage})
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.LogWarn("login rejected", map[string]interface{}{"usuario": req.Usuario, "client_ip": c.ClientIP()})
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "mensaje": invalidLoginMessage})
			return
		}
		utils.LogError(err, "Login: Error from authService.Login")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Error al iniciar sesión", "").WithCause(err))
		return
	}

	resp := gin.H{"ok": true}
	if result.Token != "" {
		resp["token"] = result.Token
	}
	c.JSON(http.StatusOK, resp)
}
