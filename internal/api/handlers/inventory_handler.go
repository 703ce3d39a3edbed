// internal/api/handlers/inventory_handler.go
package handlers

import (
	"net/http"

	"coffee-scm-api-server/internal/models"
	"coffee-scm-api-server/internal/store"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	Store store.Storage
}

type RecordInventoryPayload struct {
	LotID        string  `json:"lotID" binding:"required"`
	FacilityType string  `json:"facilityType" binding:"required"`
	FacilityID   string  `json:"facilityID" binding:"required"`
	Quantity     float64 `json:"quantity" binding:"required,gt=0"`
}

// RecordInventory creates or replaces the quantity of a lot held at a
// facility.
func (h *InventoryHandler) RecordInventory(c *gin.Context) {
	var payload RecordInventoryPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidFacilityType(payload.FacilityType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid facility type"})
		return
	}

	record := models.InventoryRecord{
		LotID:        payload.LotID,
		FacilityType: payload.FacilityType,
		FacilityID:   payload.FacilityID,
		Quantity:     payload.Quantity,
	}
	if err := h.Store.UpsertInventory(c.Request.Context(), &record); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record inventory"})
		return
	}

	c.JSON(http.StatusCreated, record)
}

// GetInventory lists the records at one facility. Both query parameters
// are required.
func (h *InventoryHandler) GetInventory(c *gin.Context) {
	facilityType := c.Query("facilityType")
	facilityID := c.Query("facilityId")
	if facilityType == "" || facilityID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "facilityType and facilityId are required"})
		return
	}

	records, err := h.Store.GetInventory(c.Request.Context(), facilityType, facilityID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query inventory"})
		return
	}

	c.JSON(http.StatusOK, records)
}
