package notifications

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/angelmondragon/capstudio-backend/pkg/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWebhookSinkRequiresURL(t *testing.T) {
	_, err := NewWebhookSink("  ")
	require.Error(t, err)
}

func TestWebhookSinkPostsText(t *testing.T) {
	var body map[string]string
	var contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sink, err := NewWebhookSink(srv.URL, WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	assert.Equal(t, "webhook", sink.Name())

	event := NewOrderEvent(enums.OrderEventShipped)
	event.OrderNumber = "CA-20260101-002"
	event.CustomerName = "홍길동"
	event.Carrier = enums.CarrierCJ
	event.TrackingNumber = "1234"

	require.NoError(t, sink.Deliver(context.Background(), event))
	assert.Equal(t, "application/json", contentType)
	assert.Contains(t, body["text"], "🚚 택배사: CJ대한통운")
	assert.Contains(t, body["text"], "🔢 송장번호: 1234")
}

func TestWebhookSinkFailsOnNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "invalid_token", http.StatusForbidden)
	}))
	defer srv.Close()

	sink, err := NewWebhookSink(srv.URL)
	require.NoError(t, err)

	err = sink.Deliver(context.Background(), NewOrderEvent(enums.OrderEventCreated))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "invalid_token")
}
