// internal/api/handlers/lot_handler.go
package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"coffee-scm-api-server/internal/models"
	"coffee-scm-api-server/internal/qr"
	"coffee-scm-api-server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LotHandler struct {
	Store   store.Storage
	Encoder *qr.Encoder
}

type CreateLotPayload struct {
	FarmerID         string  `json:"farmerID" binding:"required"`
	Quantity         float64 `json:"quantity" binding:"required,gt=0"`
	ProcessingMethod string  `json:"processingMethod" binding:"required"`
	Grade            string  `json:"grade"`
	CurrentLocation  string  `json:"currentLocation"`
}

// CreateLot registers a harvested lot. The lot ID is a season tag plus a
// random UUID fragment, so concurrent creations cannot collide the way a
// truncated timestamp would. The traceability QR code is encoded before
// anything is persisted; if encoding fails the lot is not created.
func (h *LotHandler) CreateLot(c *gin.Context) {
	var payload CreateLotPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidProcessingMethod(payload.ProcessingMethod) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid processing method"})
		return
	}
	if payload.Grade != "" && !models.ValidGrade(payload.Grade) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid grade"})
		return
	}

	now := time.Now()
	lotID := fmt.Sprintf("KC-%d-%s", now.Year(), strings.ToUpper(uuid.New().String()[:8]))

	qrCode, err := h.Encoder.Encode(c.Request.Context(), qr.TracePayload{
		LotID:            lotID,
		FarmerID:         payload.FarmerID,
		Quantity:         payload.Quantity,
		ProcessingMethod: payload.ProcessingMethod,
		Timestamp:        now,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode traceability code", "details": err.Error()})
		return
	}

	lot := models.CoffeeLot{
		LotID:            lotID,
		FarmerID:         payload.FarmerID,
		Quantity:         payload.Quantity,
		Grade:            payload.Grade,
		ProcessingMethod: payload.ProcessingMethod,
		Status:           models.LotStatusHarvested,
		QRCode:           qrCode,
		HarvestDate:      now,
		CurrentLocation:  payload.CurrentLocation,
	}
	if err := h.Store.CreateCoffeeLot(c.Request.Context(), &lot); err != nil {
		if err == store.ErrDuplicate {
			c.JSON(http.StatusConflict, gin.H{"error": "Lot with this ID already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create lot"})
		return
	}

	c.JSON(http.StatusCreated, lot)
}

// GetLots lists lots, optionally filtered by farmer or status.
func (h *LotHandler) GetLots(c *gin.Context) {
	farmerID := c.Query("farmerId")
	status := c.Query("status")

	var lots []models.CoffeeLot
	var err error
	switch {
	case farmerID != "":
		lots, err = h.Store.ListCoffeeLotsByFarmer(c.Request.Context(), farmerID)
	case status != "":
		if !models.ValidLotStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lot status"})
			return
		}
		lots, err = h.Store.ListCoffeeLotsByStatus(c.Request.Context(), status)
	default:
		lots, err = h.Store.ListCoffeeLots(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query lots"})
		return
	}

	c.JSON(http.StatusOK, lots)
}

// GetLotByID returns a single lot by its human-readable lot ID.
func (h *LotHandler) GetLotByID(c *gin.Context) {
	lot, err := h.Store.GetCoffeeLotByLotID(c.Request.Context(), c.Param("lotId"))
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lot not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve lot"})
		return
	}
	c.JSON(http.StatusOK, lot)
}

type UpdateLotStatusPayload struct {
	Status string `json:"status" binding:"required"`
}

// UpdateLotStatus advances a lot through the processing sequence. Moves
// backwards or to the current status are rejected.
func (h *LotHandler) UpdateLotStatus(c *gin.Context) {
	var payload UpdateLotStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidLotStatus(payload.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lot status"})
		return
	}

	lot, err := h.Store.UpdateCoffeeLotStatus(c.Request.Context(), c.Param("lotId"), payload.Status)
	if err != nil {
		switch err {
		case store.ErrNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Lot not found"})
		case store.ErrInvalidTransition:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Lot status can only move forward in the processing sequence"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update lot status"})
		}
		return
	}

	c.JSON(http.StatusOK, lot)
}
