package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/mrasouli/otpreg/internal/pkg/goerror"
	"github.com/mrasouli/otpreg/internal/registration/entity"
)

type RegisterInput struct {
	FullName             string `validate:"required,min=3,max=100"`
	Mobile               string `validate:"required,mobile"`
	Password             string `validate:"required,password"`
	PasswordConfirmation string `validate:"required,eqfield=Password"`

	IP    string `validate:"-"`
	Agent string `validate:"-"`
}

type RegisterOutput struct {
	Token string
}

// Register is phase one: provision an unverified account for the mobile and
// issue the first passcode. The first issuance is not gated by the cooldown;
// only resends are.
func (s *Usecase) Register(ctx context.Context, in RegisterInput) (*RegisterOutput, error) {
	ctx, span := s.startSpan(ctx, "Register")
	defer span.End()

	in.Mobile = strings.TrimSpace(in.Mobile)
	in.FullName = strings.TrimSpace(in.FullName)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	existing, err := s.repoDB.GetAccountByMobile(ctx, in.Mobile)
	if err == nil && existing.Verified() {
		return nil, goerror.NewBusiness("Mobile number already registered", goerror.CodeConflict)
	}
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get account by mobile", "mobile", in.Mobile, "error", err)
		return nil, goerror.NewServer(err)
	}

	hashedPassword, err := s.bcrypt.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return nil, goerror.NewServer(err)
	}

	acc, err := s.repoDB.FindOrCreateAccount(ctx, entity.NewAccount{
		ID:       s.uid.Generate(),
		Mobile:   in.Mobile,
		FullName: in.FullName,
		Password: string(hashedPassword),
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo find or create account", "mobile", in.Mobile, "error", err)
		return nil, goerror.NewServer(err)
	}
	if acc.Verified() {
		// Raced with a verification between the check above and the insert.
		return nil, goerror.NewBusiness("Mobile number already registered", goerror.CodeConflict)
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

	return &RegisterOutput{Token: issued.Record.Token}, nil
}
