package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles across the supply chain.
const (
	RoleFarmer      = "farmer"
	RoleMill        = "mill"
	RoleCooperative = "cooperative"
	RoleExporter    = "exporter"
	RoleRoaster     = "roaster"
	RoleRetailer    = "retailer"
)

func ValidUserRole(role string) bool {
	switch role {
	case RoleFarmer, RoleMill, RoleCooperative, RoleExporter, RoleRoaster, RoleRetailer:
		return true
	}
	return false
}

type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Email         string             `bson:"email,omitempty" json:"email"`
	Phone         string             `bson:"phone,omitempty" json:"phone"`
	Role          string             `bson:"role" json:"role"`
	CooperativeID string             `bson:"cooperativeID,omitempty" json:"cooperativeID"`
	IsActive      bool               `bson:"isActive" json:"isActive"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
