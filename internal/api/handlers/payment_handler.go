// internal/api/handlers/payment_handler.go
package handlers

import (
	"fmt"
	"net/http"

	"coffee-scm-api-server/internal/models"
	"coffee-scm-api-server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PaymentHandler struct {
	Store store.Storage
}

type CreatePaymentPayload struct {
	PayerID       string  `json:"payerID" binding:"required"`
	PayeeID       string  `json:"payeeID" binding:"required"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	PaymentMethod string  `json:"paymentMethod" binding:"required"`
	LotID         string  `json:"lotID"`
}

// CreatePayment records a transfer. The transaction ID carries a full
// UUID, so concurrent creations cannot produce duplicates.
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var payload CreatePaymentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidPaymentMethod(payload.PaymentMethod) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment method"})
		return
	}

	payment := models.Payment{
		TransactionID: fmt.Sprintf("TXN-%s", uuid.New().String()),
		LotID:         payload.LotID,
		PayerID:       payload.PayerID,
		PayeeID:       payload.PayeeID,
		Amount:        payload.Amount,
		Status:        models.PaymentStatusPending,
		PaymentMethod: payload.PaymentMethod,
	}
	if err := h.Store.CreatePayment(c.Request.Context(), &payment); err != nil {
		if err == store.ErrDuplicate {
			c.JSON(http.StatusConflict, gin.H{"error": "Transaction ID already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment"})
		return
	}

	c.JSON(http.StatusCreated, payment)
}

// GetPaymentsByUser lists payments where the user is payer or payee.
// The path parameter is the user id, not a payment id.
func (h *PaymentHandler) GetPaymentsByUser(c *gin.Context) {
	payments, err := h.Store.ListPaymentsByUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query payments"})
		return
	}
	c.JSON(http.StatusOK, payments)
}

type UpdatePaymentStatusPayload struct {
	Status string `json:"status" binding:"required"`
}

// UpdatePaymentStatus moves a payment through its lifecycle. processedAt
// is stamped only when the payment reaches a terminal status.
func (h *PaymentHandler) UpdatePaymentStatus(c *gin.Context) {
	var payload UpdatePaymentStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidPaymentStatus(payload.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment status"})
		return
	}

	payment, err := h.Store.UpdatePaymentStatus(c.Request.Context(), c.Param("id"), payload.Status)
	if err != nil {
		switch err {
		case store.ErrNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		case store.ErrInvalidTransition:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment status transition"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update payment status"})
		}
		return
	}

	c.JSON(http.StatusOK, payment)
}
