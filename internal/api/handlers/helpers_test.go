package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"testing"

	"coffee-scm-api-server/internal/api/routes"
	"coffee-scm-api-server/internal/qr"
	"coffee-scm-api-server/internal/sms"
	"coffee-scm-api-server/internal/socket"
	"coffee-scm-api-server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// newTestRouter builds the full HTTP surface on the in-memory store. The
// QR encoder runs without an uploader, so codes come back as data URLs.
func newTestRouter(gateway sms.Gateway) (*gin.Engine, *store.Memory) {
	memory := store.NewMemory()
	router := routes.SetupRouter(memory, qr.NewEncoder(nil), gateway, socket.NewHub())
	return router, memory
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), out))
}

// fakeGateway is a test double for the SMS relay.
type fakeGateway struct {
	err       error
	delivered []string
}

func (g *fakeGateway) Deliver(ctx context.Context, phone, message string) error {
	if g.err != nil {
		return g.err
	}
	g.delivered = append(g.delivered, phone)
	return nil
}
