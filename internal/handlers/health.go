// internal/handlers/health.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bazarco/backend/internal/i18n"
	"github.com/bazarco/backend/internal/services"
	"github.com/bazarco/backend/internal/utils"
)

const apiVersion = "1.0.0"

type HealthHandler struct {
	healthService *services.HealthService
}

func NewHealthHandler(healthService *services.HealthService) *HealthHandler {
	return &HealthHandler{healthService: healthService}
}

// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, h.healthService.Check())
}

// GET /
func (h *HealthHandler) Root(c *gin.Context) {
	utils.OKResponse(c, utils.T(c, i18n.KeyAPIRunning), gin.H{
		"name":    "BazarCo API",
		"version": apiVersion,
	})
}
