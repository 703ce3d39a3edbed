package handlers

import (
	"net/http"

	"coffee-scm-api-server/internal/store"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	Store store.Storage
}

// GetStats returns the aggregate counters for the dashboard view.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.Store.DashboardStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute dashboard stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
