package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"time"

	"github.com/mrasouli/otpreg/internal/pkg/clock"
	"github.com/mrasouli/otpreg/internal/pkg/goerror"
	"github.com/mrasouli/otpreg/internal/pkg/instrument"
	"github.com/mrasouli/otpreg/internal/pkg/otpcode"
	"github.com/mrasouli/otpreg/internal/pkg/uid"
	"github.com/mrasouli/otpreg/internal/registration/entity"
	"go.opentelemetry.io/otel/trace"
)

type otpRepo interface {
	GetLatestOtpByAccount(ctx context.Context, accountID int64, purpose entity.OtpPurpose) (*entity.OtpRecord, error)
	GetLiveOtpByToken(ctx context.Context, token string, ttl time.Duration) (*entity.OtpRecord, error)
	NewOtpIssuance(ctx context.Context, rec entity.OtpRecord) error
	ConsumeOtp(ctx context.Context, in entity.ConsumeOtp) error
	ExpireOtp(ctx context.Context, recordID int64) error
}

// CodeDelivery hands a freshly issued passcode to its transport. The engine
// treats delivery as best effort; a failed delivery never unwinds the record.
type CodeDelivery interface {
	Deliver(ctx context.Context, dest entity.Destination, rec *entity.OtpRecord) error
}

// OtpService is the passcode policy engine: issuance with single-live-code
// semantics, the issuance cooldown, and exactly-once consumption.
type OtpService struct {
	repo     otpRepo
	delivery CodeDelivery
	codes    otpcode.Generator
	tokens   uid.StringID
	uid      uid.NumberID
	clock    clock.Clocker
	ttl      time.Duration
	cooldown time.Duration
	ins      instrument.Instrumentation
}

type OtpServiceDependency struct {
	Repo     otpRepo
	Delivery CodeDelivery
	Codes    otpcode.Generator
	Tokens   uid.StringID
	UID      uid.NumberID
	Clock    clock.Clocker
	// TTL is how long a passcode stays consumable after issuance.
	TTL time.Duration
	// Cooldown is the minimum gap between issuances for one account.
	Cooldown   time.Duration
	Instrument instrument.Instrumentation
}

func NewOtpService(dep OtpServiceDependency) *OtpService {
	return &OtpService{
		repo:     dep.Repo,
		delivery: dep.Delivery,
		codes:    dep.Codes,
		tokens:   dep.Tokens,
		uid:      dep.UID,
		clock:    dep.Clock,
		ttl:      dep.TTL,
		cooldown: dep.Cooldown,
		ins:      dep.Instrument,
	}
}

func (s *OtpService) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("registration.otpservice").Start(ctx, name)
}

// Issue generates a passcode and token, persists the record (force-expiring
// any prior live record for the account in the same transaction), and hands
// it to delivery. A delivery failure is reported through IssuedOtp and never
// rolls the record back: the caller already holds a valid token and the
// resend path covers a lost SMS.
func (s *OtpService) Issue(ctx context.Context, accountID int64, dest entity.Destination, purpose entity.OtpPurpose, reqCtx entity.RequestContext) (*entity.IssuedOtp, error) {
	ctx, span := s.startSpan(ctx, "Issue")
	defer span.End()

	rec := entity.OtpRecord{
		ID:          s.uid.Generate(),
		AccountID:   accountID,
		Code:        s.codes.Generate(),
		Token:       s.tokens.Generate(),
		Purpose:     purpose,
		Destination: dest,
		Channel:     entity.OtpChannelSMS,
		IP:          reqCtx.IP,
		Agent:       reqCtx.Agent,
		CreatedAt:   s.clock.Now(),
	}

	if err := s.repo.NewOtpIssuance(ctx, rec); err != nil {
		slog.ErrorContext(ctx, "failed to persist otp issuance", "account_id", accountID, "error", err)
		return nil, goerror.NewServer(err)
	}

	issued := &entity.IssuedOtp{Record: &rec}
	if err := s.delivery.Deliver(ctx, dest, &rec); err != nil {
		slog.WarnContext(ctx, "otp delivery failed", "account_id", accountID, "destination", dest.Primary(), "error", err)
		issued.DeliveryErr = err
	}

	return issued, nil
}

// AllowIssuance reports whether the cooldown permits a new passcode for the
// account. An account with no prior record may always be issued one.
func (s *OtpService) AllowIssuance(ctx context.Context, accountID int64, purpose entity.OtpPurpose) (bool, error) {
	ctx, span := s.startSpan(ctx, "AllowIssuance")
	defer span.End()

	latest, err := s.repo.GetLatestOtpByAccount(ctx, accountID, purpose)
	if errors.Is(err, goerror.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to get latest otp", "account_id", accountID, "error", err)
		return false, goerror.NewServer(err)
	}

	return s.clock.Now().Sub(latest.CreatedAt) >= s.cooldown, nil
}

// ValidateAndConsume resolves the token to a live record, checks the code,
// and consumes the record exactly once. The consume is a conditional update;
// when two submissions race, the loser gets entity.ErrOtpNotFound.
func (s *OtpService) ValidateAndConsume(ctx context.Context, token, code string) (*entity.OtpRecord, error) {
	ctx, span := s.startSpan(ctx, "ValidateAndConsume")
	defer span.End()

	rec, err := s.repo.GetLiveOtpByToken(ctx, token, s.ttl)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, entity.ErrOtpNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to get otp by token", "error", err)
		return nil, goerror.NewServer(err)
	}

	now := s.clock.Now()
	if !rec.Live(now, s.ttl) {
		return nil, entity.ErrOtpNotFound
	}

	if subtle.ConstantTimeCompare([]byte(rec.Code), []byte(code)) != 1 {
		return nil, entity.ErrOtpMismatch
	}

	err = s.repo.ConsumeOtp(ctx, entity.ConsumeOtp{
		RecordID:  rec.ID,
		AccountID: rec.AccountID,
		UsedAt:    now,
	})
	if errors.Is(err, goerror.ErrNotFound) {
		// Lost the race to a concurrent submission.
		return nil, entity.ErrOtpNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to consume otp", "record_id", rec.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	rec.UsedAt = &now
	rec.Expired = true
	return rec, nil
}

// ForceExpire invalidates a live record without consuming it.
func (s *OtpService) ForceExpire(ctx context.Context, recordID int64) error {
	ctx, span := s.startSpan(ctx, "ForceExpire")
	defer span.End()

	if err := s.repo.ExpireOtp(ctx, recordID); err != nil && !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to expire otp", "record_id", recordID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
