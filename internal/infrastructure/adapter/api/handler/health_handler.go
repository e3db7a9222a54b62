package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports process liveness
type HealthHandler struct {
	environment string
}

// NewHealthHandler creates a new health handler instance
func NewHealthHandler(environment string) *HealthHandler {
	return &HealthHandler{environment: environment}
}

// Check handles the GET /health endpoint
func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"environment": h.environment,
	})
}
