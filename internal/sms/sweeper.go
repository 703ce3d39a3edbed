// internal/sms/sweeper.go
package sms

import (
	"context"
	"log"
	"time"

	"coffee-scm-api-server/internal/models"
	"coffee-scm-api-server/internal/store"
)

// Sweeper periodically retries notifications stuck in pending (for
// example created while the gateway was down). Only records still pending
// are touched, so a notification already marked sent is never delivered
// twice.
type Sweeper struct {
	Store    store.Storage
	Gateway  Gateway
	Interval time.Duration
}

func NewSweeper(s store.Storage, gateway Gateway, interval time.Duration) *Sweeper {
	return &Sweeper{Store: s, Gateway: gateway, Interval: interval}
}

// Run blocks until ctx is cancelled. Call it on its own goroutine.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	pending, err := s.Store.ListPendingSms(ctx)
	if err != nil {
		log.Printf("sms sweep: failed to list pending notifications: %v", err)
		return
	}

	for _, notification := range pending {
		status := models.SmsStatusSent
		lastError := ""
		if err := s.Gateway.Deliver(ctx, notification.Phone, notification.Message); err != nil {
			status = models.SmsStatusFailed
			lastError = err.Error()
		}
		if _, err := s.Store.UpdateSmsStatus(ctx, notification.ID.Hex(), status, lastError); err != nil {
			log.Printf("sms sweep: failed to update notification %s: %v", notification.ID.Hex(), err)
		}
	}
}
