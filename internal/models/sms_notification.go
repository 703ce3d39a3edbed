package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SMS statuses. sent means the gateway confirmed delivery; a failed
// notification may be resent (failed -> pending -> sent/failed).
const (
	SmsStatusPending = "pending"
	SmsStatusSent    = "sent"
	SmsStatusFailed  = "failed"
)

// MaxSmsLength is the single-segment GSM limit enforced before persistence.
const MaxSmsLength = 160

type SmsNotification struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RecipientID string             `bson:"recipientID" json:"recipientID"`
	Phone       string             `bson:"phone" json:"phone"`
	Message     string             `bson:"message" json:"message"`
	Status      string             `bson:"status" json:"status"`
	LastError   string             `bson:"lastError,omitempty" json:"lastError,omitempty"`
	SentAt      *time.Time         `bson:"sentAt,omitempty" json:"sentAt,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
