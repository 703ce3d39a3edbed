// internal/api/handlers/cooperative_handler.go
package handlers

import (
	"net/http"

	"coffee-scm-api-server/internal/models"
	"coffee-scm-api-server/internal/store"

	"github.com/gin-gonic/gin"
)

type CooperativeHandler struct {
	Store store.Storage
}

type CreateCooperativePayload struct {
	Name         string `json:"name" binding:"required"`
	Location     string `json:"location"`
	ContactEmail string `json:"contactEmail" binding:"omitempty,email"`
	ContactPhone string `json:"contactPhone"`
}

// CreateCooperative registers a new cooperative.
func (h *CooperativeHandler) CreateCooperative(c *gin.Context) {
	var payload CreateCooperativePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	coop := models.Cooperative{
		Name:         payload.Name,
		Location:     payload.Location,
		ContactEmail: payload.ContactEmail,
		ContactPhone: payload.ContactPhone,
	}
	if err := h.Store.CreateCooperative(c.Request.Context(), &coop); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create cooperative"})
		return
	}

	c.JSON(http.StatusCreated, coop)
}

// GetAllCooperatives lists every cooperative, newest first.
func (h *CooperativeHandler) GetAllCooperatives(c *gin.Context) {
	coops, err := h.Store.ListCooperatives(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query cooperatives"})
		return
	}
	c.JSON(http.StatusOK, coops)
}
