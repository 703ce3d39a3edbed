package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Cooperative struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Location     string             `bson:"location,omitempty" json:"location"`
	ContactEmail string             `bson:"contactEmail,omitempty" json:"contactEmail"`
	ContactPhone string             `bson:"contactPhone,omitempty" json:"contactPhone"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
