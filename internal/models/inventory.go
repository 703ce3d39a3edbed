package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Facility types that can hold lot inventory.
const (
	FacilityWetMill     = "wet_mill"
	FacilityDryMill     = "dry_mill"
	FacilityCooperative = "cooperative"
)

func ValidFacilityType(facilityType string) bool {
	switch facilityType {
	case FacilityWetMill, FacilityDryMill, FacilityCooperative:
		return true
	}
	return false
}

// InventoryRecord tracks how much of a lot sits at a facility. The
// logical key is (lotID, facilityID); recording again replaces the
// quantity.
type InventoryRecord struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LotID        string             `bson:"lotID" json:"lotID"`
	FacilityType string             `bson:"facilityType" json:"facilityType"`
	FacilityID   string             `bson:"facilityID" json:"facilityID"`
	Quantity     float64            `bson:"quantity" json:"quantity"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
