package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"userdir/internal/api"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// HealthHandler reports process liveness.
type HealthHandler struct {
	startedAt time.Time
}

// NewHealthHandler captures the process start time.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{startedAt: time.Now()}
}

// Check godoc
// @Summary Service health
// @Tags health
// @Produce json
// @Success 200 {object} api.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Check(c echo.Context) error {
	return c.JSON(http.StatusOK, api.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   Version,
		Uptime:    time.Since(h.startedAt).Seconds(),
	})
}
