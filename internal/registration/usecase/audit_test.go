package usecase

import (
	"context"
	"testing"
)

func TestConsumeOtpIssuedWritesAuditLog(t *testing.T) {
	// Arrange
	f := newFixture(t)

	// Act
	err := f.uc.ConsumeOtpIssued(context.Background(), ConsumeOtpIssuedInput{
		AccountID: 42,
		Mobile:    "0912345678",
		Purpose:   "registration",
	})

	// Assert
	if err != nil {
		t.Fatalf("consume otp issued failed: %v", err)
	}
	if len(f.db.audits) != 1 {
		t.Fatalf("got %d audit entries, want 1", len(f.db.audits))
	}
	if f.db.audits[0].Event != "otp_issued" || f.db.audits[0].AccountID != 42 {
		t.Fatalf("unexpected audit entry: %+v", f.db.audits[0])
	}
}

func TestConsumeAccountVerifiedWritesAuditLog(t *testing.T) {
	// Arrange
	f := newFixture(t)

	// Act
	err := f.uc.ConsumeAccountVerified(context.Background(), ConsumeAccountVerifiedInput{
		AccountID: 42,
		Mobile:    "0912345678",
		FullName:  "Test User",
	})

	// Assert
	if err != nil {
		t.Fatalf("consume account verified failed: %v", err)
	}
	if len(f.db.audits) != 1 || f.db.audits[0].Event != "account_verified" {
		t.Fatalf("unexpected audit entries: %+v", f.db.audits)
	}
}
