// internal/sms/gateway.go
package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrNoGateway is reported when delivery is attempted without any
// configured gateway. The notification stays failed rather than being
// optimistically marked sent.
var ErrNoGateway = errors.New("no sms gateway configured")

// Gateway delivers one SMS. Deliver returns nil only when the carrier-side
// service confirmed acceptance; any other outcome is an error the caller
// records against the notification.
type Gateway interface {
	Deliver(ctx context.Context, phone, message string) error
}

// HTTPGateway posts the message to a configured webhook (an SMS relay such
// as an Africa's Talking / Twilio bridge). The relay owns carrier details;
// this side only cares about the HTTP result.
type HTTPGateway struct {
	URL    string
	Client *http.Client
}

func NewHTTPGateway(url string) *HTTPGateway {
	return &HTTPGateway{
		URL:    url,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

type deliverRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

func (g *HTTPGateway) Deliver(ctx context.Context, phone, message string) error {
	body, err := json.Marshal(deliverRequest{Phone: phone, Message: message})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.Client.Do(req)
	if err != nil {
		return fmt.Errorf("sms gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}
	return nil
}
