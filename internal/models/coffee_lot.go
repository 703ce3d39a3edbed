// internal/models/coffee_lot.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lot statuses, in processing order. A lot only ever moves to a later
// status; skipping intermediate stages is allowed (a washed lot can go
// straight from quality_testing to sold without an auction).
const (
	LotStatusHarvested       = "harvested"
	LotStatusWetProcessing   = "wet_processing"
	LotStatusDryProcessing   = "dry_processing"
	LotStatusQualityTesting  = "quality_testing"
	LotStatusReadyForAuction = "ready_for_auction"
	LotStatusSold            = "sold"
	LotStatusExported        = "exported"
	LotStatusRoasted         = "roasted"
	LotStatusRetail          = "retail"
)

var lotStatusRank = map[string]int{
	LotStatusHarvested:       0,
	LotStatusWetProcessing:   1,
	LotStatusDryProcessing:   2,
	LotStatusQualityTesting:  3,
	LotStatusReadyForAuction: 4,
	LotStatusSold:            5,
	LotStatusExported:        6,
	LotStatusRoasted:         7,
	LotStatusRetail:          8,
}

func ValidLotStatus(status string) bool {
	_, ok := lotStatusRank[status]
	return ok
}

// CanAdvanceLotStatus reports whether a lot may move from one status to
// another. Only strictly forward moves are valid.
func CanAdvanceLotStatus(from, to string) bool {
	fromRank, ok := lotStatusRank[from]
	if !ok {
		return false
	}
	toRank, ok := lotStatusRank[to]
	if !ok {
		return false
	}
	return toRank > fromRank
}

// Processing methods accepted at lot creation.
const (
	ProcessingMethodWet   = "wet"
	ProcessingMethodDry   = "dry"
	ProcessingMethodHoney = "honey"
)

func ValidProcessingMethod(method string) bool {
	switch method {
	case ProcessingMethodWet, ProcessingMethodDry, ProcessingMethodHoney:
		return true
	}
	return false
}

// Kenyan green coffee grades.
const (
	GradeAA = "AA"
	GradeAB = "AB"
	GradeC  = "C"
	GradePB = "PB"
	GradeE  = "E"
)

func ValidGrade(grade string) bool {
	switch grade {
	case GradeAA, GradeAB, GradeC, GradePB, GradeE:
		return true
	}
	return false
}

type CoffeeLot struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LotID            string             `bson:"lotID" json:"lotID"` // e.g. "KC-2026-4F7A21BC", immutable
	FarmerID         string             `bson:"farmerID" json:"farmerID"`
	Quantity         float64            `bson:"quantity" json:"quantity"` // kilograms of cherry/parchment
	Grade            string             `bson:"grade,omitempty" json:"grade,omitempty"`
	ProcessingMethod string             `bson:"processingMethod" json:"processingMethod"`
	Status           string             `bson:"status" json:"status"`
	QRCode           string             `bson:"qrCode,omitempty" json:"qrCode"` // data URL or S3 URL of the traceability code
	HarvestDate      time.Time          `bson:"harvestDate" json:"harvestDate"`
	CurrentLocation  string             `bson:"currentLocation,omitempty" json:"currentLocation"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
}
