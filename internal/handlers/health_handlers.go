package handlers

import (
	"context"
	"net/http"

	"gym_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports database connectivity.
type HealthHandler struct {
	ping func(ctx context.Context) error
}

func NewHealthHandler(ping func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{ping: ping}
}

// TestDB handles GET /test-db. Failures are reported in the body with status 200.
func (h *HealthHandler) TestDB(c *gin.Context) {
	if err := h.ping(c.Request.Context()); err != nil {
		utils.LogError(err, "TestDB: database ping failed")
		c.JSON(http.StatusOK, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "mensaje": "Conectado a la base de datos ✅"})
}
