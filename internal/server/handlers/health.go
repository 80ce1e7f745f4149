package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HealthHandler struct {
	logger    *zap.Logger
	startTime time.Time
	apiKey    func() string
}

func NewHealthHandler(logger *zap.Logger, apiKey func() string) *HealthHandler {
	return &HealthHandler{
		logger:    logger,
		startTime: time.Now(),
		apiKey:    apiKey,
	}
}

func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status: "alive",
		Uptime: time.Since(h.startTime).String(),
	})
}

// Readiness fails while no provider credential is configured, since every
// fetch would come back as a missing-credential error.
func (h *HealthHandler) Readiness(c *gin.Context) {
	if h.apiKey() == "" {
		h.logger.Debug("Readiness check failed: credential not configured")
		c.JSON(http.StatusServiceUnavailable, HealthResponse{
			Status: "unavailable",
			Uptime: time.Since(h.startTime).String(),
			Checks: map[string]string{"credential": "missing"},
		})
		return
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status: "ready",
		Uptime: time.Since(h.startTime).String(),
		Checks: map[string]string{"credential": "present"},
	})
}

func (h *HealthHandler) Health(c *gin.Context) {
	status := "ok"
	if h.apiKey() == "" {
		status = "degraded"
	}
	c.JSON(http.StatusOK, HealthResponse{
		Status:    status,
		Uptime:    time.Since(h.startTime).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
