// internal/models/payment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment statuses. completed and failed are terminal.
const (
	PaymentStatusPending    = "pending"
	PaymentStatusProcessing = "processing"
	PaymentStatusCompleted  = "completed"
	PaymentStatusFailed     = "failed"
)

var paymentTransitions = map[string][]string{
	PaymentStatusPending:    {PaymentStatusProcessing, PaymentStatusCompleted, PaymentStatusFailed},
	PaymentStatusProcessing: {PaymentStatusCompleted, PaymentStatusFailed},
}

func ValidPaymentStatus(status string) bool {
	switch status {
	case PaymentStatusPending, PaymentStatusProcessing, PaymentStatusCompleted, PaymentStatusFailed:
		return true
	}
	return false
}

// CanTransitionPayment reports whether a payment may move between the two
// statuses. Terminal statuses have no outgoing moves.
func CanTransitionPayment(from, to string) bool {
	for _, allowed := range paymentTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// PaymentTerminal reports whether a status ends the payment's lifecycle.
func PaymentTerminal(status string) bool {
	return status == PaymentStatusCompleted || status == PaymentStatusFailed
}

// Payment methods.
const (
	PaymentMethodMpesa = "m-pesa"
	PaymentMethodBank  = "bank"
	PaymentMethodCash  = "cash"
)

func ValidPaymentMethod(method string) bool {
	switch method {
	case PaymentMethodMpesa, PaymentMethodBank, PaymentMethodCash:
		return true
	}
	return false
}

type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TransactionID string             `bson:"transactionID" json:"transactionID"` // "TXN-<uuid>", unique, never reused
	LotID         string             `bson:"lotID,omitempty" json:"lotID,omitempty"`
	PayerID       string             `bson:"payerID" json:"payerID"`
	PayeeID       string             `bson:"payeeID" json:"payeeID"`
	Amount        float64            `bson:"amount" json:"amount"`
	Status        string             `bson:"status" json:"status"`
	PaymentMethod string             `bson:"paymentMethod" json:"paymentMethod"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	ProcessedAt   *time.Time         `bson:"processedAt,omitempty" json:"processedAt,omitempty"`
}
