package handlers_test

import (
	"net/http"
	"strings"
	"sync"
	"testing"

	"coffee-scm-api-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentLifecycle(t *testing.T) {
	router, _ := newTestRouter(nil)

	recorder := doJSON(t, router, http.MethodPost, "/api/v1/payments", map[string]interface{}{
		"payerID":       "buyer-1",
		"payeeID":       "farmer-1",
		"amount":        15000.0,
		"paymentMethod": models.PaymentMethodMpesa,
		"lotID":         "KC-2026-AAAA1111",
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	var payment models.Payment
	decodeBody(t, recorder, &payment)

	assert.Equal(t, models.PaymentStatusPending, payment.Status)
	assert.True(t, strings.HasPrefix(payment.TransactionID, "TXN-"))
	assert.Nil(t, payment.ProcessedAt)

	recorder = doJSON(t, router, http.MethodPut, "/api/v1/payments/"+payment.ID.Hex()+"/status", map[string]interface{}{
		"status": models.PaymentStatusCompleted,
	})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	var completed models.Payment
	decodeBody(t, recorder, &completed)
	assert.Equal(t, models.PaymentStatusCompleted, completed.Status)
	assert.NotNil(t, completed.ProcessedAt)

	// Terminal statuses take no further transitions.
	recorder = doJSON(t, router, http.MethodPut, "/api/v1/payments/"+payment.ID.Hex()+"/status", map[string]interface{}{
		"status": models.PaymentStatusPending,
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	// Both sides of the transfer see it in their history.
	for _, userID := range []string{"buyer-1", "farmer-1"} {
		recorder = doJSON(t, router, http.MethodGet, "/api/v1/payments/"+userID, nil)
		require.Equal(t, http.StatusOK, recorder.Code)
		var payments []models.Payment
		decodeBody(t, recorder, &payments)
		require.Len(t, payments, 1)
		assert.Equal(t, payment.TransactionID, payments[0].TransactionID)
	}
}

func TestCreatePaymentRejectsInvalidMethod(t *testing.T) {
	router, _ := newTestRouter(nil)
	recorder := doJSON(t, router, http.MethodPost, "/api/v1/payments", map[string]interface{}{
		"payerID":       "buyer-1",
		"payeeID":       "farmer-1",
		"amount":        100.0,
		"paymentMethod": "crypto",
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestUpdatePaymentStatusUnknownPayment(t *testing.T) {
	router, _ := newTestRouter(nil)
	recorder := doJSON(t, router, http.MethodPut, "/api/v1/payments/64f000000000000000000000/status", map[string]interface{}{
		"status": models.PaymentStatusCompleted,
	})
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

// Concurrent creations must each get their own transaction ID.
func TestCreatePaymentConcurrentUniqueTransactions(t *testing.T) {
	router, _ := newTestRouter(nil)

	const workers = 50
	ids := make([]string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			recorder := doJSON(t, router, http.MethodPost, "/api/v1/payments", map[string]interface{}{
				"payerID":       "buyer-1",
				"payeeID":       "farmer-1",
				"amount":        100.0,
				"paymentMethod": models.PaymentMethodBank,
			})
			if recorder.Code != http.StatusCreated {
				return
			}
			var payment models.Payment
			decodeBody(t, recorder, &payment)
			ids[slot] = payment.TransactionID
		}(i)
	}
	wg.Wait()

	seen := map[string]bool{}
	for _, id := range ids {
		require.NotEmpty(t, id)
		assert.False(t, seen[id], "transaction ID %q repeated", id)
		seen[id] = true
	}
}
