package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bid is an append-only record of one offer on an auction. BidTime is
// server-assigned at placement.
type Bid struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AuctionID string             `bson:"auctionID" json:"auctionID"`
	BidderID  string             `bson:"bidderID" json:"bidderID"`
	Amount    float64            `bson:"amount" json:"amount"`
	BidTime   time.Time          `bson:"bidTime" json:"bidTime"`
}
