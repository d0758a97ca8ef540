package registration

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mrasouli/otpreg/internal/pkg/clock"
	"github.com/mrasouli/otpreg/internal/pkg/config"
	"github.com/mrasouli/otpreg/internal/pkg/goroutine"
	"github.com/mrasouli/otpreg/internal/pkg/hash"
	"github.com/mrasouli/otpreg/internal/pkg/instrument"
	"github.com/mrasouli/otpreg/internal/pkg/jwt"
	"github.com/mrasouli/otpreg/internal/pkg/messaging"
	"github.com/mrasouli/otpreg/internal/pkg/otpcode"
	"github.com/mrasouli/otpreg/internal/pkg/router"
	"github.com/mrasouli/otpreg/internal/pkg/smsgateway"
	"github.com/mrasouli/otpreg/internal/pkg/throttle"
	"github.com/mrasouli/otpreg/internal/pkg/uid"
	"github.com/mrasouli/otpreg/internal/pkg/validator"
	"github.com/mrasouli/otpreg/internal/registration/inbound"
	"github.com/mrasouli/otpreg/internal/registration/outbound/db"
	"github.com/mrasouli/otpreg/internal/registration/outbound/mq"
	"github.com/mrasouli/otpreg/internal/registration/outbound/sms"
	"github.com/mrasouli/otpreg/internal/registration/usecase"
)

type Dependency struct {
	Ctx        context.Context            `validate:"required"`
	Goroutine  *goroutine.Manager         `validate:"required"`
	DBConn     *pgxpool.Pool              `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Messaging  messaging.Messaging        `validate:"required"`
	SMSGateway smsgateway.Gateway         `validate:"required"`
	Limiter    throttle.Limiter           `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	UUID       uid.StringID               `validate:"required"`
	Token      uid.StringID               `validate:"required"`
	Codes      otpcode.Generator          `validate:"required"`
	Bcrypt     hash.Hash                  `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	JWT        jwt.JWT                    `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	repo := db.NewDB(dep.DBConn, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)

	delivery := sms.NewDelivery(sms.Config{
		Gateway:    dep.SMSGateway,
		Instrument: dep.Instrument,
		MaxRetries: uint64(dep.Config.GetInt("modules.registration.sms_max_retries")),
		Backoff:    dep.Config.GetSecond("modules.registration.sms_backoff_seconds"),
	})

	otpSvc := usecase.NewOtpService(usecase.OtpServiceDependency{
		Repo:       repo,
		Delivery:   delivery,
		Codes:      dep.Codes,
		Tokens:     dep.Token,
		UID:        dep.UID,
		Clock:      dep.Clock,
		TTL:        dep.Config.GetSecond("modules.registration.otp_ttl_seconds"),
		Cooldown:   dep.Config.GetSecond("modules.registration.otp_cooldown_seconds"),
		Instrument: dep.Instrument,
	})

	uc := usecase.New(usecase.Dependency{
		RepoDB:        repo,
		RepoMessaging: repoMsg,
		Otp:           otpSvc,
		Limiter:       dep.Limiter,
		Validator:     dep.Validator,
		Config:        dep.Config,
		Bcrypt:        dep.Bcrypt,
		UID:           dep.UID,
		Clock:         dep.Clock,
		JWT:           dep.JWT,
		Instrument:    dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)
	inbound.RegisterMQConsumer(dep.Ctx, dep.Config, dep.Goroutine, dep.Messaging, dep.UUID, uc, dep.Instrument)

	return nil
}
