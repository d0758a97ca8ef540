package smsgateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHTTPSend(t *testing.T) {
	// Arrange
	var got sendRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode payload: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	gw, err := NewHTTP(HTTPConfig{
		BaseURL:  srv.URL,
		APIKey:   "test-key",
		SenderID: "OTPREG",
		Client:   srv.Client(),
	})
	if err != nil {
		t.Fatalf("failed to build gateway: %v", err)
	}

	// Act
	err = gw.Send(context.Background(), Message{To: "0912345678", Body: "Your registration code is 123456."})

	// Assert
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if got.To != "0912345678" || got.SenderID != "OTPREG" {
		t.Fatalf("unexpected payload: %+v", got)
	}
	if auth != "Bearer test-key" {
		t.Fatalf("authorization header = %q", auth)
	}
}

func TestHTTPSendProviderError(t *testing.T) {
	// Arrange
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	gw, err := NewHTTP(HTTPConfig{BaseURL: srv.URL, Client: srv.Client()})
	if err != nil {
		t.Fatalf("failed to build gateway: %v", err)
	}

	// Act
	err = gw.Send(context.Background(), Message{To: "0912345678", Body: "hello"})

	// Assert
	if err == nil {
		t.Fatal("non-2xx response did not fail")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Fatalf("error %q does not carry the status", err)
	}
}

func TestHTTPSendMissingRecipient(t *testing.T) {
	gw, err := NewHTTP(HTTPConfig{BaseURL: "http://localhost:0"})
	if err != nil {
		t.Fatalf("failed to build gateway: %v", err)
	}

	if err := gw.Send(context.Background(), Message{Body: "hello"}); !errors.Is(err, ErrHTTPRecipientRequired) {
		t.Fatalf("err = %v, want ErrHTTPRecipientRequired", err)
	}
}

func TestHTTPRequiresBaseURL(t *testing.T) {
	if _, err := NewHTTP(HTTPConfig{}); !errors.Is(err, ErrHTTPBaseURLRequired) {
		t.Fatalf("err = %v, want ErrHTTPBaseURLRequired", err)
	}
}
