// internal/qr/encoder.go
package qr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"coffee-scm-api-server/internal/s3"

	qrcode "github.com/skip2/go-qrcode"
)

// TracePayload is the traceability record embedded in a lot's QR code.
type TracePayload struct {
	LotID            string    `json:"lotID"`
	FarmerID         string    `json:"farmerID"`
	Quantity         float64   `json:"quantity"`
	ProcessingMethod string    `json:"processingMethod"`
	Timestamp        time.Time `json:"timestamp"`
}

// Encoder renders trace payloads as scannable PNG codes. With an S3
// uploader the image is hosted and the URL returned; without one the
// image is inlined as a data URL.
type Encoder struct {
	Uploader *s3.Uploader
	Size     int
}

func NewEncoder(uploader *s3.Uploader) *Encoder {
	return &Encoder{Uploader: uploader, Size: 256}
}

// Encode returns the stored representation of the payload's QR code. Any
// failure here must abort the caller's creation flow: a lot without a
// traceability code is never persisted.
func (e *Encoder) Encode(ctx context.Context, payload TracePayload) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal trace payload: %w", err)
	}

	png, err := qrcode.Encode(string(data), qrcode.Medium, e.Size)
	if err != nil {
		return "", fmt.Errorf("failed to encode QR image: %w", err)
	}

	if e.Uploader != nil {
		objectKey := fmt.Sprintf("qr/%s.png", payload.LotID)
		url, err := e.Uploader.UploadFile(ctx, bytes.NewReader(png), objectKey, "image/png")
		if err != nil {
			return "", err
		}
		return url, nil
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
