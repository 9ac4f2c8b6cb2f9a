package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const responseBodyReadLimit int64 = 1024

var errWebhookURLRequired = errors.New("notification webhook url is required")

// WebhookSink posts a text block for every order event to a chat webhook.
type WebhookSink struct {
	url        string
	httpClient *http.Client
}

// WebhookOption configures optional sink behavior.
type WebhookOption func(*WebhookSink)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) WebhookOption {
	return func(s *WebhookSink) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// NewWebhookSink builds the sink for the given incoming-webhook URL.
func NewWebhookSink(url string, opts ...WebhookOption) (*WebhookSink, error) {
	trimmed := strings.TrimSpace(url)
	if trimmed == "" {
		return nil, errWebhookURLRequired
	}

	sink := &WebhookSink{
		url:        trimmed,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(sink)
		}
	}
	return sink, nil
}

func (s *WebhookSink) Name() string {
	return "webhook"
}

// Deliver posts {"text": ...} and treats any non-2xx response as a failure.
func (s *WebhookSink) Deliver(ctx context.Context, event OrderEvent) error {
	payload, err := json.Marshal(map[string]string{"text": BuildMessage(event)})
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute webhook request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		return fmt.Errorf("webhook status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return nil
}
