package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Farmer is the farming profile attached to a user. FarmID is unique
// across the system (one registered farm per profile).
type Farmer struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        string             `bson:"userID" json:"userID"`
	FarmID        string             `bson:"farmID" json:"farmID"`
	FarmSize      float64            `bson:"farmSize,omitempty" json:"farmSize"`
	Location      string             `bson:"location,omitempty" json:"location"`
	CooperativeID string             `bson:"cooperativeID,omitempty" json:"cooperativeID"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
