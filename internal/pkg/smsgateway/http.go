package smsgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var (
	// ErrHTTPBaseURLRequired is returned when the provider base URL is missing.
	ErrHTTPBaseURLRequired = errors.New("smsgateway: provider base url is required")
	// ErrHTTPRecipientRequired is returned when Message.To is empty.
	ErrHTTPRecipientRequired = errors.New("smsgateway: recipient is required")
)

// HTTPConfig configures the HTTP provider gateway.
type HTTPConfig struct {
	// BaseURL is the provider's send endpoint.
	BaseURL string
	// APIKey authenticates against the provider.
	APIKey string
	// SenderID is the originator shown to the recipient.
	SenderID string
	// Timeout bounds a single send attempt. Zero means 10s.
	Timeout time.Duration
	// Client overrides the HTTP client, mainly for tests.
	Client *http.Client
}

// HTTP is a Gateway backed by a JSON-over-HTTP SMS provider API.
type HTTP struct {
	cfg    HTTPConfig
	client *http.Client
}

// NewHTTP constructs an HTTP provider gateway.
func NewHTTP(cfg HTTPConfig) (*HTTP, error) {
	if cfg.BaseURL == "" {
		return nil, ErrHTTPBaseURLRequired
	}

	client := cfg.Client
	if client == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	return &HTTP{cfg: cfg, client: client}, nil
}

type sendRequest struct {
	To       string `json:"to"`
	Body     string `json:"body"`
	SenderID string `json:"sender_id,omitempty"`
}

// Send posts the message to the provider and fails on any non-2xx response.
func (h *HTTP) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return ErrHTTPRecipientRequired
	}

	payload, err := json.Marshal(sendRequest{
		To:       msg.To,
		Body:     msg.Body,
		SenderID: h.cfg.SenderID,
	})
	if err != nil {
		return fmt.Errorf("smsgateway: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.cfg.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("smsgateway: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if h.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+h.cfg.APIKey)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("smsgateway: send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512)) //nolint:errcheck // best effort
		return fmt.Errorf("smsgateway: provider returned %d: %s", resp.StatusCode, body)
	}

	return nil
}

// Close implements io.Closer for interface compatibility.
func (h *HTTP) Close() error {
	h.client.CloseIdleConnections()
	return nil
}
