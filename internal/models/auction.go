// internal/models/auction.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Auction statuses. closed and cancelled are terminal.
const (
	AuctionStatusActive    = "active"
	AuctionStatusClosed    = "closed"
	AuctionStatusCancelled = "cancelled"
)

// Auction is a single-lot sale. CurrentPrice is nil until the first bid
// lands and is non-decreasing afterwards. LeadingBidderID tracks the
// highest bidder while the auction runs; WinnerID is authoritative and
// only assigned when the auction closes.
type Auction struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LotID           string             `bson:"lotID" json:"lotID"`
	StartingPrice   float64            `bson:"startingPrice" json:"startingPrice"`
	CurrentPrice    *float64           `bson:"currentPrice,omitempty" json:"currentPrice"`
	SellerID        string             `bson:"sellerID" json:"sellerID"`
	LeadingBidderID string             `bson:"leadingBidderID,omitempty" json:"leadingBidderID,omitempty"`
	WinnerID        string             `bson:"winnerID,omitempty" json:"winnerID,omitempty"`
	Status          string             `bson:"status" json:"status"`
	StartTime       time.Time          `bson:"startTime" json:"startTime"`
	EndTime         *time.Time         `bson:"endTime,omitempty" json:"endTime,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}
