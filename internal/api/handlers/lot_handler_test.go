package handlers_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"coffee-scm-api-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLotRegistrationFlow(t *testing.T) {
	router, _ := newTestRouter(nil)

	// Cooperative, then a farmer attached to it, then the farmer's lot.
	recorder := doJSON(t, router, http.MethodPost, "/api/v1/cooperatives", map[string]interface{}{
		"name":     "Kiambu Growers",
		"location": "Kiambu",
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	var coop models.Cooperative
	decodeBody(t, recorder, &coop)

	recorder = doJSON(t, router, http.MethodPost, "/api/v1/farmers", map[string]interface{}{
		"userID":        "user-1",
		"farmID":        "FARM-001",
		"farmSize":      2.5,
		"cooperativeID": coop.ID.Hex(),
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	var farmer models.Farmer
	decodeBody(t, recorder, &farmer)

	recorder = doJSON(t, router, http.MethodPost, "/api/v1/lots", map[string]interface{}{
		"farmerID":         farmer.ID.Hex(),
		"quantity":         120.0,
		"processingMethod": models.ProcessingMethodWet,
		"grade":            models.GradeAA,
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	var lot models.CoffeeLot
	decodeBody(t, recorder, &lot)

	assert.Equal(t, models.LotStatusHarvested, lot.Status)
	prefix := fmt.Sprintf("KC-%d-", time.Now().Year())
	assert.True(t, strings.HasPrefix(lot.LotID, prefix), "lot ID %q should carry the season prefix", lot.LotID)
	assert.NotEmpty(t, lot.QRCode)
	assert.True(t, strings.HasPrefix(lot.QRCode, "data:image/png;base64,"))

	// The lot is retrievable by its human-readable ID.
	recorder = doJSON(t, router, http.MethodGet, "/api/v1/lots/"+lot.LotID, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var fetched models.CoffeeLot
	decodeBody(t, recorder, &fetched)
	assert.Equal(t, lot.LotID, fetched.LotID)
}

func TestCreateLotGeneratesUniqueIDs(t *testing.T) {
	router, _ := newTestRouter(nil)

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		recorder := doJSON(t, router, http.MethodPost, "/api/v1/lots", map[string]interface{}{
			"farmerID":         "farmer-1",
			"quantity":         50.0,
			"processingMethod": models.ProcessingMethodDry,
		})
		require.Equal(t, http.StatusCreated, recorder.Code)
		var lot models.CoffeeLot
		decodeBody(t, recorder, &lot)
		assert.False(t, seen[lot.LotID], "lot ID %q repeated", lot.LotID)
		seen[lot.LotID] = true
	}
}

func TestCreateLotRejectsInvalidInput(t *testing.T) {
	router, _ := newTestRouter(nil)

	recorder := doJSON(t, router, http.MethodPost, "/api/v1/lots", map[string]interface{}{
		"farmerID":         "farmer-1",
		"quantity":         50.0,
		"processingMethod": "natural",
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = doJSON(t, router, http.MethodPost, "/api/v1/lots", map[string]interface{}{
		"farmerID":         "farmer-1",
		"quantity":         -5.0,
		"processingMethod": models.ProcessingMethodWet,
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = doJSON(t, router, http.MethodPost, "/api/v1/lots", map[string]interface{}{
		"farmerID":         "farmer-1",
		"quantity":         50.0,
		"processingMethod": models.ProcessingMethodWet,
		"grade":            "AAA",
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetLotsFilters(t *testing.T) {
	router, _ := newTestRouter(nil)

	for _, farmerID := range []string{"farmer-1", "farmer-1", "farmer-2"} {
		recorder := doJSON(t, router, http.MethodPost, "/api/v1/lots", map[string]interface{}{
			"farmerID":         farmerID,
			"quantity":         50.0,
			"processingMethod": models.ProcessingMethodWet,
		})
		require.Equal(t, http.StatusCreated, recorder.Code)
	}

	recorder := doJSON(t, router, http.MethodGet, "/api/v1/lots?farmerId=farmer-1", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var lots []models.CoffeeLot
	decodeBody(t, recorder, &lots)
	assert.Len(t, lots, 2)

	recorder = doJSON(t, router, http.MethodGet, "/api/v1/lots?status="+models.LotStatusHarvested, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	decodeBody(t, recorder, &lots)
	assert.Len(t, lots, 3)

	recorder = doJSON(t, router, http.MethodGet, "/api/v1/lots?status=brewing", nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestUpdateLotStatusForwardOnly(t *testing.T) {
	router, _ := newTestRouter(nil)

	recorder := doJSON(t, router, http.MethodPost, "/api/v1/lots", map[string]interface{}{
		"farmerID":         "farmer-1",
		"quantity":         50.0,
		"processingMethod": models.ProcessingMethodWet,
	})
	require.Equal(t, http.StatusCreated, recorder.Code)
	var lot models.CoffeeLot
	decodeBody(t, recorder, &lot)

	// Forward, including skipped stages, is allowed.
	recorder = doJSON(t, router, http.MethodPut, "/api/v1/lots/"+lot.LotID+"/status", map[string]interface{}{
		"status": models.LotStatusReadyForAuction,
	})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	var updated models.CoffeeLot
	decodeBody(t, recorder, &updated)
	assert.Equal(t, models.LotStatusReadyForAuction, updated.Status)

	// Backwards is not.
	recorder = doJSON(t, router, http.MethodPut, "/api/v1/lots/"+lot.LotID+"/status", map[string]interface{}{
		"status": models.LotStatusHarvested,
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	// Unknown statuses never reach the store.
	recorder = doJSON(t, router, http.MethodPut, "/api/v1/lots/"+lot.LotID+"/status", map[string]interface{}{
		"status": "fermenting",
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = doJSON(t, router, http.MethodPut, "/api/v1/lots/KC-2026-MISSING0/status", map[string]interface{}{
		"status": models.LotStatusSold,
	})
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestGetLotByIDNotFound(t *testing.T) {
	router, _ := newTestRouter(nil)
	recorder := doJSON(t, router, http.MethodGet, "/api/v1/lots/KC-2026-MISSING0", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
