package handlers_test

import (
	"net/http"
	"testing"

	"coffee-scm-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createLotForAuction(t *testing.T, router *gin.Engine) models.CoffeeLot {
	t.Helper()
	recorder := doJSON(t, router, http.MethodPost, "/api/v1/lots", map[string]interface{}{
		"farmerID":         "farmer-1",
		"quantity":         120.0,
		"processingMethod": models.ProcessingMethodWet,
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	var lot models.CoffeeLot
	decodeBody(t, recorder, &lot)
	return lot
}

func openAuction(t *testing.T, router *gin.Engine, lotID string, startingPrice float64) models.Auction {
	t.Helper()
	recorder := doJSON(t, router, http.MethodPost, "/api/v1/auctions", map[string]interface{}{
		"lotID":         lotID,
		"startingPrice": startingPrice,
		"sellerID":      "seller-1",
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	var auction models.Auction
	decodeBody(t, recorder, &auction)
	return auction
}

func placeBid(t *testing.T, router *gin.Engine, auctionID, bidderID string, amount float64) int {
	t.Helper()
	recorder := doJSON(t, router, http.MethodPost, "/api/v1/bids", map[string]interface{}{
		"auctionID": auctionID,
		"bidderID":  bidderID,
		"amount":    amount,
	})
	return recorder.Code
}

func TestAuctionLifecycle(t *testing.T) {
	router, _ := newTestRouter(nil)

	lot := createLotForAuction(t, router)
	auction := openAuction(t, router, lot.LotID, 100)
	assert.Equal(t, models.AuctionStatusActive, auction.Status)
	assert.Nil(t, auction.CurrentPrice)
	assert.Empty(t, auction.WinnerID)

	// First bid above the starting price is accepted.
	assert.Equal(t, http.StatusCreated, placeBid(t, router, auction.ID.Hex(), "buyer-1", 120))

	// A bid that does not exceed the current price is rejected without
	// touching the auction.
	assert.Equal(t, http.StatusConflict, placeBid(t, router, auction.ID.Hex(), "buyer-2", 110))

	assert.Equal(t, http.StatusCreated, placeBid(t, router, auction.ID.Hex(), "buyer-3", 150))

	// The ledger holds only accepted bids, highest first.
	recorder := doJSON(t, router, http.MethodGet, "/api/v1/auctions/"+auction.ID.Hex()+"/bids", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var bids []models.Bid
	decodeBody(t, recorder, &bids)
	require.Len(t, bids, 2)
	assert.Equal(t, 150.0, bids[0].Amount)
	assert.Equal(t, "buyer-3", bids[0].BidderID)
	assert.Equal(t, 120.0, bids[1].Amount)

	// Closing assigns the winner from the recorded bids.
	recorder = doJSON(t, router, http.MethodPost, "/api/v1/auctions/"+auction.ID.Hex()+"/close", nil)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	var closed models.Auction
	decodeBody(t, recorder, &closed)
	assert.Equal(t, models.AuctionStatusClosed, closed.Status)
	assert.Equal(t, "buyer-3", closed.WinnerID)
	require.NotNil(t, closed.CurrentPrice)
	assert.Equal(t, 150.0, *closed.CurrentPrice)
	assert.NotNil(t, closed.EndTime)

	// The auction no longer takes bids and cannot close twice.
	assert.Equal(t, http.StatusConflict, placeBid(t, router, auction.ID.Hex(), "buyer-4", 500))
	recorder = doJSON(t, router, http.MethodPost, "/api/v1/auctions/"+auction.ID.Hex()+"/close", nil)
	assert.Equal(t, http.StatusConflict, recorder.Code)
}

func TestOpenAuctionRequiresExistingLot(t *testing.T) {
	router, _ := newTestRouter(nil)
	recorder := doJSON(t, router, http.MethodPost, "/api/v1/auctions", map[string]interface{}{
		"lotID":         "KC-2026-MISSING0",
		"startingPrice": 100.0,
		"sellerID":      "seller-1",
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetActiveAuctionsExcludesFinished(t *testing.T) {
	router, _ := newTestRouter(nil)

	lot := createLotForAuction(t, router)
	running := openAuction(t, router, lot.LotID, 100)
	finished := openAuction(t, router, lot.LotID, 200)

	recorder := doJSON(t, router, http.MethodPost, "/api/v1/auctions/"+finished.ID.Hex()+"/cancel", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var cancelled models.Auction
	decodeBody(t, recorder, &cancelled)
	assert.Equal(t, models.AuctionStatusCancelled, cancelled.Status)
	assert.Empty(t, cancelled.WinnerID)

	recorder = doJSON(t, router, http.MethodGet, "/api/v1/auctions", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var active []models.Auction
	decodeBody(t, recorder, &active)
	require.Len(t, active, 1)
	assert.Equal(t, running.ID, active[0].ID)
}

func TestBidOnUnknownAuction(t *testing.T) {
	router, _ := newTestRouter(nil)
	assert.Equal(t, http.StatusNotFound, placeBid(t, router, "64f000000000000000000000", "buyer-1", 100))
}

func TestAuctionBidsUnknownAuction(t *testing.T) {
	router, _ := newTestRouter(nil)
	recorder := doJSON(t, router, http.MethodGet, "/api/v1/auctions/64f000000000000000000000/bids", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
