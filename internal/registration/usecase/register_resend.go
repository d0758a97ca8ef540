package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/mrasouli/otpreg/internal/pkg/goerror"
	"github.com/mrasouli/otpreg/internal/registration/entity"
)

type RegisterResendInput struct {
	Mobile string `validate:"required,mobile"`

	IP    string `validate:"-"`
	Agent string `validate:"-"`
}

type RegisterResendOutput struct {
	Token string
}

// RegisterResend re-issues the registration passcode. Unknown and already
// verified mobiles no-op silently so the endpoint cannot be used to
// enumerate accounts. The issuance cooldown applies here, unlike the first
// issuance in Register.
func (s *Usecase) RegisterResend(ctx context.Context, in RegisterResendInput) (*RegisterResendOutput, error) {
	ctx, span := s.startSpan(ctx, "RegisterResend")
	defer span.End()

	in.Mobile = strings.TrimSpace(in.Mobile)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	acc, err := s.repoDB.GetAccountByMobile(ctx, in.Mobile)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "mobile not registered for resend", "mobile", in.Mobile)
		return &RegisterResendOutput{}, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by mobile", "mobile", in.Mobile, "error", err)
		return nil, goerror.NewServer(err)
	}

	if acc.Verified() {
		slog.WarnContext(ctx, "resend requested for verified account", "account_id", acc.ID)
		return &RegisterResendOutput{}, nil
	}

	allowed, err := s.otp.AllowIssuance(ctx, acc.ID, entity.OtpPurposeRegistration)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, goerror.NewBusiness("Please wait before requesting another code", goerror.CodeTooManyRequest)
	}

	issued, err := s.otp.Issue(ctx, acc.ID, entity.NewDestination(acc.Mobile), entity.OtpPurposeRegistration, entity.RequestContext{
		IP:    in.IP,
		Agent: in.Agent,
	})
	if err != nil {
		return nil, err
	}

	if err := s.repoMessaging.PublishOtpIssued(ctx, OtpIssuedEvent{
		AccountID: acc.ID,
		Mobile:    acc.Mobile,
		Purpose:   issued.Record.Purpose.String(),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish otp issued", "account_id", acc.ID, "error", err)
	}

	return &RegisterResendOutput{Token: issued.Record.Token}, nil
}
