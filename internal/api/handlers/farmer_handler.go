// internal/api/handlers/farmer_handler.go
package handlers

import (
	"net/http"

	"coffee-scm-api-server/internal/models"
	"coffee-scm-api-server/internal/store"

	"github.com/gin-gonic/gin"
)

type FarmerHandler struct {
	Store store.Storage
}

type CreateFarmerPayload struct {
	UserID        string  `json:"userID" binding:"required"`
	FarmID        string  `json:"farmID" binding:"required"`
	FarmSize      float64 `json:"farmSize" binding:"omitempty,gt=0"`
	Location      string  `json:"location"`
	CooperativeID string  `json:"cooperativeID"`
}

// CreateFarmer registers a farming profile. The cooperative, when given,
// must already exist.
func (h *FarmerHandler) CreateFarmer(c *gin.Context) {
	var payload CreateFarmerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if payload.CooperativeID != "" {
		if _, err := h.Store.GetCooperative(c.Request.Context(), payload.CooperativeID); err != nil {
			if err == store.ErrNotFound {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Cooperative not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check cooperative"})
			return
		}
	}

	farmer := models.Farmer{
		UserID:        payload.UserID,
		FarmID:        payload.FarmID,
		FarmSize:      payload.FarmSize,
		Location:      payload.Location,
		CooperativeID: payload.CooperativeID,
	}
	if err := h.Store.CreateFarmer(c.Request.Context(), &farmer); err != nil {
		if err == store.ErrDuplicate {
			c.JSON(http.StatusConflict, gin.H{"error": "Farm with this ID already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create farmer"})
		return
	}

	c.JSON(http.StatusCreated, farmer)
}

// GetFarmers lists farmers, optionally filtered by cooperative.
func (h *FarmerHandler) GetFarmers(c *gin.Context) {
	cooperativeID := c.Query("cooperativeId")

	var farmers []models.Farmer
	var err error
	if cooperativeID != "" {
		farmers, err = h.Store.ListFarmersByCooperative(c.Request.Context(), cooperativeID)
	} else {
		farmers, err = h.Store.ListFarmers(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query farmers"})
		return
	}

	c.JSON(http.StatusOK, farmers)
}
