package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mrasouli/otpreg/internal/registration/entity"
)

// ConsumeOtpIssuedInput carries the payload of an issued-code event.
type ConsumeOtpIssuedInput struct {
	AccountID int64
	Mobile    string
	Purpose   string
}

// ConsumeAccountVerifiedInput carries the payload of a verified-account event.
type ConsumeAccountVerifiedInput struct {
	AccountID int64
	Mobile    string
	FullName  string
}

// ConsumeOtpIssued records an audit entry for a delivered verification code.
func (s *Usecase) ConsumeOtpIssued(ctx context.Context, in ConsumeOtpIssuedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeOtpIssued")
	defer span.End()

	err := s.repoDB.CreateAuditLog(ctx, entity.AuditLog{
		ID:        s.uid.Generate(),
		AccountID: in.AccountID,
		Event:     "otp_issued",
		Detail:    fmt.Sprintf("verification code issued to %s for %s", in.Mobile, in.Purpose),
		CreatedAt: s.clock.Now(),
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create audit log for otp issued", "error", err)
		return err
	}

	return nil
}

// ConsumeAccountVerified records an audit entry for a completed verification.
func (s *Usecase) ConsumeAccountVerified(ctx context.Context, in ConsumeAccountVerifiedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeAccountVerified")
	defer span.End()

	err := s.repoDB.CreateAuditLog(ctx, entity.AuditLog{
		ID:        s.uid.Generate(),
		AccountID: in.AccountID,
		Event:     "account_verified",
		Detail:    fmt.Sprintf("mobile %s verified for %s", in.Mobile, in.FullName),
		CreatedAt: s.clock.Now(),
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create audit log for account verified", "error", err)
		return err
	}

	return nil
}
