package handlers_test

import (
	"net/http"
	"testing"

	"coffee-scm-api-server/internal/models"
	"coffee-scm-api-server/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardStatsEndpoint(t *testing.T) {
	router, _ := newTestRouter(nil)

	for _, farmID := range []string{"FARM-001", "FARM-002"} {
		recorder := doJSON(t, router, http.MethodPost, "/api/v1/farmers", map[string]interface{}{
			"userID": "user-" + farmID,
			"farmID": farmID,
		})
		require.Equal(t, http.StatusCreated, recorder.Code)
	}

	recorder := doJSON(t, router, http.MethodPost, "/api/v1/lots", map[string]interface{}{
		"farmerID":         "farmer-1",
		"quantity":         120.0,
		"processingMethod": models.ProcessingMethodWet,
	})
	require.Equal(t, http.StatusCreated, recorder.Code)
	var lot models.CoffeeLot
	decodeBody(t, recorder, &lot)

	recorder = doJSON(t, router, http.MethodPost, "/api/v1/auctions", map[string]interface{}{
		"lotID":         lot.LotID,
		"startingPrice": 100.0,
		"sellerID":      "seller-1",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = doJSON(t, router, http.MethodGet, "/api/v1/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var stats store.DashboardStats
	decodeBody(t, recorder, &stats)

	assert.Equal(t, int64(2), stats.ActiveFarmers)
	assert.Equal(t, int64(1), stats.CoffeeLots)
	assert.Equal(t, 120.0, stats.TotalInventory)
	assert.Equal(t, int64(1), stats.ActiveAuctions)
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(nil)
	recorder := doJSON(t, router, http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
}
