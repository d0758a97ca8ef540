package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mrasouli/otpreg/internal/pkg/goerror"
	"github.com/mrasouli/otpreg/internal/registration/entity"
)

func issueForAccount(t *testing.T, f *fixture, accountID int64) *entity.IssuedOtp {
	t.Helper()

	issued, err := f.otp.Issue(context.Background(), accountID, entity.NewDestination("0912345678"), entity.OtpPurposeRegistration, entity.RequestContext{
		IP:    "203.0.113.7",
		Agent: "test-agent",
	})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	return issued
}

func TestOtpServiceIssue(t *testing.T) {
	// Arrange
	f := newFixture(t)

	// Act
	issued := issueForAccount(t, f, 42)

	// Assert
	rec := issued.Record
	if len(rec.Token) != 60 {
		t.Fatalf("token has length %d, want 60", len(rec.Token))
	}
	if len(rec.Code) != 6 {
		t.Fatalf("code has length %d, want 6", len(rec.Code))
	}
	if rec.IP != "203.0.113.7" || rec.Agent != "test-agent" {
		t.Fatalf("audit metadata not stamped: ip=%q agent=%q", rec.IP, rec.Agent)
	}
	if issued.DeliveryErr != nil {
		t.Fatalf("unexpected delivery error: %v", issued.DeliveryErr)
	}
	if len(f.delivery.sent) != 1 || f.delivery.sent[0].Code != rec.Code {
		t.Fatal("code was not handed to delivery")
	}
}

func TestOtpServiceIssueForceExpiresPrior(t *testing.T) {
	// Arrange
	f := newFixture(t)
	first := issueForAccount(t, f, 42)

	// Act
	second := issueForAccount(t, f, 42)

	// Assert
	if prior := f.otpRepo.find(first.Record.ID); !prior.Expired {
		t.Fatal("prior record is still live after re-issue")
	}
	if _, err := f.otp.ValidateAndConsume(context.Background(), first.Record.Token, first.Record.Code); !errors.Is(err, entity.ErrOtpNotFound) {
		t.Fatalf("stale token consumable, err = %v", err)
	}
	if _, err := f.otp.ValidateAndConsume(context.Background(), second.Record.Token, second.Record.Code); err != nil {
		t.Fatalf("fresh token rejected: %v", err)
	}
}

func TestOtpServiceIssueDeliveryFailure(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.delivery.err = errors.New("provider unavailable")

	// Act
	issued := issueForAccount(t, f, 42)

	// Assert
	if issued.DeliveryErr == nil {
		t.Fatal("delivery error not reported")
	}
	if f.otpRepo.find(issued.Record.ID) == nil {
		t.Fatal("record rolled back on delivery failure")
	}
}

func TestOtpServiceAllowIssuance(t *testing.T) {
	// Arrange
	f := newFixture(t)
	ctx := context.Background()

	// No prior record: always allowed.
	allowed, err := f.otp.AllowIssuance(ctx, 42, entity.OtpPurposeRegistration)
	if err != nil || !allowed {
		t.Fatalf("first issuance blocked: allowed=%v err=%v", allowed, err)
	}

	issueForAccount(t, f, 42)

	// Inside the cooldown window.
	f.clock.Advance(119 * time.Second)
	allowed, err = f.otp.AllowIssuance(ctx, 42, entity.OtpPurposeRegistration)
	if err != nil || allowed {
		t.Fatalf("issuance allowed inside cooldown: allowed=%v err=%v", allowed, err)
	}

	// Cooldown elapsed.
	f.clock.Advance(1 * time.Second)
	allowed, err = f.otp.AllowIssuance(ctx, 42, entity.OtpPurposeRegistration)
	if err != nil || !allowed {
		t.Fatalf("issuance blocked after cooldown: allowed=%v err=%v", allowed, err)
	}
}

func TestOtpServiceValidateAndConsume(t *testing.T) {
	// Arrange
	f := newFixture(t)
	ctx := context.Background()
	issued := issueForAccount(t, f, 42)

	// Act
	rec, err := f.otp.ValidateAndConsume(ctx, issued.Record.Token, issued.Record.Code)

	// Assert
	if err != nil {
		t.Fatalf("consume failed: %v", err)
	}
	if rec.UsedAt == nil {
		t.Fatal("consumed record has no used_at")
	}
	if !rec.Expired {
		t.Fatal("consumed record is not marked expired")
	}

	// The stored record carries the same terminal state.
	if stored := f.otpRepo.find(rec.ID); stored.UsedAt == nil || !stored.Expired {
		t.Fatalf("stored record not terminal: used_at=%v expired=%v", stored.UsedAt, stored.Expired)
	}

	// Exactly once: the same token is dead now.
	if _, err := f.otp.ValidateAndConsume(ctx, issued.Record.Token, issued.Record.Code); !errors.Is(err, entity.ErrOtpNotFound) {
		t.Fatalf("second consume err = %v, want ErrOtpNotFound", err)
	}
}

func TestOtpServiceValidateWrongCodeKeepsRecordLive(t *testing.T) {
	// Arrange
	f := newFixture(t)
	ctx := context.Background()
	issued := issueForAccount(t, f, 42)

	// Act
	_, err := f.otp.ValidateAndConsume(ctx, issued.Record.Token, "000000")

	// Assert
	if !errors.Is(err, entity.ErrOtpMismatch) {
		t.Fatalf("err = %v, want ErrOtpMismatch", err)
	}
	if _, err := f.otp.ValidateAndConsume(ctx, issued.Record.Token, issued.Record.Code); err != nil {
		t.Fatalf("record not consumable after mismatch: %v", err)
	}
}

func TestOtpServiceValidateExpiredByTTL(t *testing.T) {
	// Arrange
	f := newFixture(t)
	issued := issueForAccount(t, f, 42)
	f.clock.Advance(121 * time.Second)

	// Act
	_, err := f.otp.ValidateAndConsume(context.Background(), issued.Record.Token, issued.Record.Code)

	// Assert
	if !errors.Is(err, entity.ErrOtpNotFound) {
		t.Fatalf("err = %v, want ErrOtpNotFound", err)
	}
}

func TestOtpServiceValidateUnknownToken(t *testing.T) {
	// Arrange
	f := newFixture(t)

	// Act
	_, err := f.otp.ValidateAndConsume(context.Background(), "no-such-token", "123456")

	// Assert
	if !errors.Is(err, entity.ErrOtpNotFound) {
		t.Fatalf("err = %v, want ErrOtpNotFound", err)
	}
}

func TestOtpServiceConsumeLostRace(t *testing.T) {
	// Arrange
	f := newFixture(t)
	issued := issueForAccount(t, f, 42)
	f.otpRepo.failConsume = goerror.ErrNotFound

	// Act
	_, err := f.otp.ValidateAndConsume(context.Background(), issued.Record.Token, issued.Record.Code)

	// Assert
	if !errors.Is(err, entity.ErrOtpNotFound) {
		t.Fatalf("err = %v, want ErrOtpNotFound", err)
	}
}

func TestOtpServiceForceExpire(t *testing.T) {
	// Arrange
	f := newFixture(t)
	issued := issueForAccount(t, f, 42)

	// Act
	if err := f.otp.ForceExpire(context.Background(), issued.Record.ID); err != nil {
		t.Fatalf("force expire failed: %v", err)
	}

	// Assert
	if _, err := f.otp.ValidateAndConsume(context.Background(), issued.Record.Token, issued.Record.Code); !errors.Is(err, entity.ErrOtpNotFound) {
		t.Fatalf("expired record consumable, err = %v", err)
	}

	// Expiring an already dead record is a no-op.
	if err := f.otp.ForceExpire(context.Background(), issued.Record.ID); err != nil {
		t.Fatalf("repeat force expire failed: %v", err)
	}
}
