package usecase

import (
	"context"

	"github.com/mrasouli/otpreg/internal/pkg/clock"
	"github.com/mrasouli/otpreg/internal/pkg/config"
	"github.com/mrasouli/otpreg/internal/pkg/hash"
	"github.com/mrasouli/otpreg/internal/pkg/instrument"
	"github.com/mrasouli/otpreg/internal/pkg/jwt"
	"github.com/mrasouli/otpreg/internal/pkg/throttle"
	"github.com/mrasouli/otpreg/internal/pkg/uid"
	"github.com/mrasouli/otpreg/internal/pkg/validator"
	"github.com/mrasouli/otpreg/internal/registration/entity"
	"go.opentelemetry.io/otel/trace"
)

// OtpIssuedEvent is published after a passcode record is persisted.
type OtpIssuedEvent struct {
	AccountID int64
	Mobile    string
	Purpose   string
}

// AccountVerifiedEvent is published after an account completes verification.
type AccountVerifiedEvent struct {
	AccountID int64
	Mobile    string
	FullName  string
}

type repoMessaging interface {
	PublishOtpIssued(ctx context.Context, msg OtpIssuedEvent) error
	PublishAccountVerified(ctx context.Context, msg AccountVerifiedEvent) error
}

type repoDB interface {
	GetAccountByMobile(ctx context.Context, mobile string) (*entity.Account, error)
	GetAccountByID(ctx context.Context, id int64) (*entity.Account, error)
	FindOrCreateAccount(ctx context.Context, in entity.NewAccount) (*entity.Account, error)
	CreateAuditLog(ctx context.Context, in entity.AuditLog) error
}

// Usecase implements the two-phase registration flow on top of the passcode
// engine in OtpService.
type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	otp           *OtpService
	limiter       throttle.Limiter
	validator     validator.Validator
	cfg           config.Config
	bcrypt        hash.Hash
	uid           uid.NumberID
	clock         clock.Clocker
	jwt           jwt.JWT
	ins           instrument.Instrumentation
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Otp           *OtpService
	Limiter       throttle.Limiter
	Validator     validator.Validator
	Config        config.Config
	Bcrypt        hash.Hash
	UID           uid.NumberID
	Clock         clock.Clocker
	JWT           jwt.JWT
	Instrument    instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		otp:           dep.Otp,
		limiter:       dep.Limiter,
		validator:     dep.Validator,
		cfg:           dep.Config,
		bcrypt:        dep.Bcrypt,
		uid:           dep.UID,
		clock:         dep.Clock,
		jwt:           dep.JWT,
		ins:           dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("registration.usecase").Start(ctx, name)
}
