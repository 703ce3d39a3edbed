// internal/api/handlers/sms_handler.go
package handlers

import (
	"net/http"

	"coffee-scm-api-server/internal/models"
	"coffee-scm-api-server/internal/sms"
	"coffee-scm-api-server/internal/store"

	"github.com/gin-gonic/gin"
)

type SmsHandler struct {
	Store   store.Storage
	Gateway sms.Gateway // nil when no gateway is configured
}

type SendSmsPayload struct {
	RecipientID string `json:"recipientID" binding:"required"`
	Phone       string `json:"phone" binding:"required"`
	Message     string `json:"message" binding:"required"`
}

// SendSms records a notification and attempts delivery. The record only
// reads sent after the gateway confirmed; a gateway error (or a missing
// gateway) leaves it failed with the reason attached, ready for resend.
func (h *SmsHandler) SendSms(c *gin.Context) {
	var payload SendSmsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(payload.Message) > models.MaxSmsLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message exceeds 160 characters"})
		return
	}

	notification := models.SmsNotification{
		RecipientID: payload.RecipientID,
		Phone:       payload.Phone,
		Message:     payload.Message,
		Status:      models.SmsStatusPending,
	}
	if err := h.Store.CreateSmsNotification(c.Request.Context(), &notification); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create notification"})
		return
	}

	h.attemptDelivery(c, &notification)
}

// ResendSms retries a notification that previously failed.
func (h *SmsHandler) ResendSms(c *gin.Context) {
	notification, err := h.Store.GetSmsNotification(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve notification"})
		return
	}

	if notification.Status != models.SmsStatusFailed {
		c.JSON(http.StatusConflict, gin.H{"error": "Only failed notifications can be resent"})
		return
	}

	h.attemptDelivery(c, notification)
}

// GetPendingSms lists notifications awaiting delivery, for retry tooling.
func (h *SmsHandler) GetPendingSms(c *gin.Context) {
	notifications, err := h.Store.ListPendingSms(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query notifications"})
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (h *SmsHandler) attemptDelivery(c *gin.Context, notification *models.SmsNotification) {
	var deliveryErr error
	if h.Gateway == nil {
		deliveryErr = sms.ErrNoGateway
	} else {
		deliveryErr = h.Gateway.Deliver(c.Request.Context(), notification.Phone, notification.Message)
	}

	if deliveryErr != nil {
		updated, err := h.Store.UpdateSmsStatus(c.Request.Context(), notification.ID.Hex(), models.SmsStatusFailed, deliveryErr.Error())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification status"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "SMS delivery failed", "details": deliveryErr.Error(), "notification": updated})
		return
	}

	updated, err := h.Store.UpdateSmsStatus(c.Request.Context(), notification.ID.Hex(), models.SmsStatusSent, "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification status"})
		return
	}
	c.JSON(http.StatusCreated, updated)
}
