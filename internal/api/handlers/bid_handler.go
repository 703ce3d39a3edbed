// internal/api/handlers/bid_handler.go
package handlers

import (
	"encoding/json"
	"net/http"

	"coffee-scm-api-server/internal/socket"
	"coffee-scm-api-server/internal/store"

	"github.com/gin-gonic/gin"
)

type BidHandler struct {
	Store store.Storage
	Hub   *socket.Hub
}

type PlaceBidPayload struct {
	AuctionID string  `json:"auctionID" binding:"required"`
	BidderID  string  `json:"bidderID" binding:"required"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
}

// PlaceBid submits an offer on an active auction. The store serializes
// the price check and update per auction, so a bid that reads back here
// as accepted really did exceed every concurrent rival at the moment it
// applied. A tie with the current price is rejected.
func (h *BidHandler) PlaceBid(c *gin.Context) {
	var payload PlaceBidPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bid, err := h.Store.PlaceBid(c.Request.Context(), payload.AuctionID, payload.BidderID, payload.Amount)
	if err != nil {
		switch err {
		case store.ErrNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Auction not found"})
		case store.ErrAuctionNotActive:
			c.JSON(http.StatusConflict, gin.H{"error": "Auction is not active"})
		case store.ErrBidTooLow:
			c.JSON(http.StatusConflict, gin.H{"error": "Bid must exceed the current price"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place bid"})
		}
		return
	}

	if h.Hub != nil {
		event := map[string]interface{}{
			"event":     "bid_placed",
			"auctionID": bid.AuctionID,
			"bidderID":  bid.BidderID,
			"amount":    bid.Amount,
		}
		eventJSON, _ := json.Marshal(event)
		h.Hub.Broadcast(eventJSON)
	}

	c.JSON(http.StatusCreated, bid)
}
