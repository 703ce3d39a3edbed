package sms

import (
	"context"
	"errors"
	"testing"
	"time"

	"coffee-scm-api-server/internal/models"
	"coffee-scm-api-server/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGateway struct {
	err       error
	delivered []string
}

func (g *stubGateway) Deliver(ctx context.Context, phone, message string) error {
	if g.err != nil {
		return g.err
	}
	g.delivered = append(g.delivered, phone)
	return nil
}

func TestSweepDeliversPending(t *testing.T) {
	ctx := context.Background()
	memory := store.NewMemory()
	gateway := &stubGateway{}

	pending := &models.SmsNotification{RecipientID: "farmer-1", Phone: "+254700000001", Message: "hello", Status: models.SmsStatusPending}
	require.NoError(t, memory.CreateSmsNotification(ctx, pending))
	sent := &models.SmsNotification{RecipientID: "farmer-2", Phone: "+254700000002", Message: "hello", Status: models.SmsStatusSent}
	require.NoError(t, memory.CreateSmsNotification(ctx, sent))

	sweeper := NewSweeper(memory, gateway, time.Minute)
	sweeper.sweep(ctx)

	// Only the pending record was delivered.
	assert.Equal(t, []string{"+254700000001"}, gateway.delivered)

	updated, err := memory.GetSmsNotification(ctx, pending.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.SmsStatusSent, updated.Status)
	require.NotNil(t, updated.SentAt)

	remaining, err := memory.ListPendingSms(ctx)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestSweepRecordsFailures(t *testing.T) {
	ctx := context.Background()
	memory := store.NewMemory()
	gateway := &stubGateway{err: errors.New("carrier rejected")}

	pending := &models.SmsNotification{RecipientID: "farmer-1", Phone: "+254700000001", Message: "hello", Status: models.SmsStatusPending}
	require.NoError(t, memory.CreateSmsNotification(ctx, pending))

	sweeper := NewSweeper(memory, gateway, time.Minute)
	sweeper.sweep(ctx)

	updated, err := memory.GetSmsNotification(ctx, pending.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.SmsStatusFailed, updated.Status)
	assert.Equal(t, "carrier rejected", updated.LastError)
	assert.Nil(t, updated.SentAt)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	memory := store.NewMemory()
	sweeper := NewSweeper(memory, &stubGateway{}, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancellation")
	}
}
