// internal/api/handlers/auction_handler.go
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"coffee-scm-api-server/internal/models"
	"coffee-scm-api-server/internal/socket"
	"coffee-scm-api-server/internal/store"

	"github.com/gin-gonic/gin"
)

type AuctionHandler struct {
	Store store.Storage
	Hub   *socket.Hub
}

type OpenAuctionPayload struct {
	LotID         string  `json:"lotID" binding:"required"`
	StartingPrice float64 `json:"startingPrice" binding:"required,gt=0"`
	SellerID      string  `json:"sellerID" binding:"required"`
}

// OpenAuction starts an auction for an existing lot. The price has no
// bids yet, so currentPrice stays unset until the first one lands.
func (h *AuctionHandler) OpenAuction(c *gin.Context) {
	var payload OpenAuctionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.Store.GetCoffeeLotByLotID(c.Request.Context(), payload.LotID); err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Lot not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check lot"})
		return
	}

	auction := models.Auction{
		LotID:         payload.LotID,
		StartingPrice: payload.StartingPrice,
		SellerID:      payload.SellerID,
		Status:        models.AuctionStatusActive,
		StartTime:     time.Now(),
	}
	if err := h.Store.CreateAuction(c.Request.Context(), &auction); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open auction"})
		return
	}

	c.JSON(http.StatusCreated, auction)
}

// GetActiveAuctions lists every running auction, newest first.
func (h *AuctionHandler) GetActiveAuctions(c *gin.Context) {
	auctions, err := h.Store.ListActiveAuctions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query auctions"})
		return
	}
	c.JSON(http.StatusOK, auctions)
}

// CloseAuction ends an active auction and assigns the winner from the
// recorded bids: highest amount, earliest bid time among equals.
func (h *AuctionHandler) CloseAuction(c *gin.Context) {
	auction, err := h.Store.CloseAuction(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeAuctionError(c, err, "Failed to close auction")
		return
	}

	h.broadcast(map[string]interface{}{
		"event":    "auction_closed",
		"auction":  auction,
		"winnerID": auction.WinnerID,
	})
	c.JSON(http.StatusOK, auction)
}

// CancelAuction withdraws an active auction. No winner is assigned.
func (h *AuctionHandler) CancelAuction(c *gin.Context) {
	auction, err := h.Store.CancelAuction(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeAuctionError(c, err, "Failed to cancel auction")
		return
	}

	h.broadcast(map[string]interface{}{
		"event":   "auction_cancelled",
		"auction": auction,
	})
	c.JSON(http.StatusOK, auction)
}

// GetAuctionBids lists an auction's bids, highest amount first; among
// equal amounts the earlier bid takes precedence.
func (h *AuctionHandler) GetAuctionBids(c *gin.Context) {
	auctionID := c.Param("id")
	if _, err := h.Store.GetAuction(c.Request.Context(), auctionID); err != nil {
		h.writeAuctionError(c, err, "Failed to retrieve auction")
		return
	}

	bids, err := h.Store.ListBidsByAuction(c.Request.Context(), auctionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query bids"})
		return
	}
	c.JSON(http.StatusOK, bids)
}

func (h *AuctionHandler) writeAuctionError(c *gin.Context, err error, fallback string) {
	switch err {
	case store.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Auction not found"})
	case store.ErrAuctionNotActive:
		c.JSON(http.StatusConflict, gin.H{"error": "Auction is not active"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func (h *AuctionHandler) broadcast(event map[string]interface{}) {
	if h.Hub == nil {
		return
	}
	eventJSON, _ := json.Marshal(event)
	h.Hub.Broadcast(eventJSON)
}
