package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spizarnia/backend/internal/service"
)

// UsageHandler exposes the daily AI usage snapshot
type UsageHandler struct {
	usage service.UsageLimiter
}

// NewUsageHandler creates a new UsageHandler instance
func NewUsageHandler(usage service.UsageLimiter) *UsageHandler {
	return &UsageHandler{
		usage: usage,
	}
}

// RegisterRoutes registers the usage routes
func (h *UsageHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/usage", h.Snapshot)
}

// Snapshot returns today's used/limit/remaining for both AI features.
func (h *UsageHandler) Snapshot(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	snapshot, err := h.usage.GetUsageSnapshot(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load usage"})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}
