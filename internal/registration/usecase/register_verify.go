package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mrasouli/otpreg/internal/pkg/goerror"
	"github.com/mrasouli/otpreg/internal/registration/entity"
)

type RegisterVerifyInput struct {
	Token string `validate:"required,len=60"`
	Otp   string `validate:"required,len=6,numeric"`

	IP string `validate:"-"`
}

type RegisterVerifyOutput struct {
	AccessToken string
}

// RegisterVerify is phase two: consume the passcode and activate the
// account. Unknown tokens, dead records, and wrong codes all surface as one
// generic client message so a caller cannot probe which part failed; the
// distinction is kept in logs.
func (s *Usecase) RegisterVerify(ctx context.Context, in RegisterVerifyInput) (*RegisterVerifyOutput, error) {
	ctx, span := s.startSpan(ctx, "RegisterVerify")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	allowed, err := s.limiter.Allow(ctx,
		"register_verify:"+in.IP+":"+in.Token,
		s.cfg.GetInt64("modules.registration.verify_max_attempts"),
		s.cfg.GetSecond("modules.registration.verify_window_seconds"),
	)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check verify throttle", "error", err)
		return nil, goerror.NewServer(err)
	}
	if !allowed {
		return nil, goerror.NewBusiness("Too many attempts, please try again later", goerror.CodeTooManyRequest)
	}

	rec, err := s.otp.ValidateAndConsume(ctx, in.Token, in.Otp)
	if errors.Is(err, entity.ErrOtpNotFound) || errors.Is(err, entity.ErrOtpMismatch) {
		slog.WarnContext(ctx, "otp verification rejected", "reason", err)
		return nil, goerror.NewBusiness("The verification code is invalid or has expired", goerror.CodeUnauthorized)
	}
	if err != nil {
		return nil, err
	}

	acc, err := s.repoDB.GetAccountByID(ctx, rec.AccountID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by id", "account_id", rec.AccountID, "error", err)
		return nil, goerror.NewServer(err)
	}

	accessToken, err := s.jwt.Generate(acc.ID, acc.Mobile)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate session token", "account_id", acc.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishAccountVerified(ctx, AccountVerifiedEvent{
		AccountID: acc.ID,
		Mobile:    acc.Mobile,
		FullName:  acc.FullName,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish account verified", "account_id", acc.ID, "error", err)
	}

	return &RegisterVerifyOutput{AccessToken: accessToken}, nil
}
