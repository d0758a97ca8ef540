package mq

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/mrasouli/otpreg/internal/pkg/instrument"
	"github.com/mrasouli/otpreg/internal/pkg/messaging"
	"github.com/mrasouli/otpreg/internal/registration/usecase"
	"github.com/mrasouli/otpreg/internal/shared/event"
)

type fakeClient struct {
	subjects []string
	bodies   [][]byte
}

func (f *fakeClient) Publish(_ context.Context, subject string, msg messaging.OutgoingMessage) (messaging.PublishResult, error) {
	f.subjects = append(f.subjects, subject)
	f.bodies = append(f.bodies, msg.Body)

	return messaging.PublishResult{Subject: subject, Timestamp: time.Now()}, nil
}

func (f *fakeClient) Consume(context.Context, string, messaging.Handler, ...messaging.ConsumeOption) error {
	return nil
}

func (f *fakeClient) Close() error { return nil }

func TestPublishOtpIssued(t *testing.T) {
	// Arrange
	client := &fakeClient{}
	m := NewMessaging(client, instrument.NewNoop())

	// Act
	err := m.PublishOtpIssued(context.Background(), usecase.OtpIssuedEvent{
		AccountID: 11,
		Mobile:    "0912345678",
		Purpose:   "registration",
	})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(client.subjects) != 1 || client.subjects[0] != event.OtpIssuedSubject {
		t.Fatalf("unexpected subjects: %v", client.subjects)
	}

	var payload map[string]any
	if err := json.Unmarshal(client.bodies[0], &payload); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if payload["mobile"] != "0912345678" || payload["purpose"] != "registration" {
		t.Fatalf("unexpected payload: %v", payload)
	}
	// The challenge token and passcode are credentials and must never
	// leave the service on the bus.
	for _, key := range []string{"token", "code", "otp"} {
		if _, ok := payload[key]; ok {
			t.Fatalf("payload leaks %q: %v", key, payload)
		}
	}
}

func TestPublishAccountVerified(t *testing.T) {
	// Arrange
	client := &fakeClient{}
	m := NewMessaging(client, instrument.NewNoop())

	// Act
	err := m.PublishAccountVerified(context.Background(), usecase.AccountVerifiedEvent{
		AccountID: 11,
		Mobile:    "0912345678",
		FullName:  "Test User",
	})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(client.subjects) != 1 || client.subjects[0] != event.AccountVerifiedSubject {
		t.Fatalf("unexpected subjects: %v", client.subjects)
	}

	var payload event.AccountVerifiedMessage
	if err := json.Unmarshal(client.bodies[0], &payload); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if payload.AccountID != 11 || payload.FullName != "Test User" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}
