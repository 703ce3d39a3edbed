package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionPayment(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{PaymentStatusPending, PaymentStatusProcessing, true},
		{PaymentStatusPending, PaymentStatusCompleted, true},
		{PaymentStatusPending, PaymentStatusFailed, true},
		{PaymentStatusProcessing, PaymentStatusCompleted, true},
		{PaymentStatusProcessing, PaymentStatusFailed, true},
		{PaymentStatusProcessing, PaymentStatusPending, false},
		{PaymentStatusCompleted, PaymentStatusPending, false},
		{PaymentStatusCompleted, PaymentStatusFailed, false},
		{PaymentStatusFailed, PaymentStatusCompleted, false},
		{PaymentStatusPending, "refunded", false},
	}
	for _, tt := range tests {
		t.Run(tt.from+"_to_"+tt.to, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransitionPayment(tt.from, tt.to))
		})
	}
}

func TestPaymentTerminal(t *testing.T) {
	assert.True(t, PaymentTerminal(PaymentStatusCompleted))
	assert.True(t, PaymentTerminal(PaymentStatusFailed))
	assert.False(t, PaymentTerminal(PaymentStatusPending))
	assert.False(t, PaymentTerminal(PaymentStatusProcessing))
}
