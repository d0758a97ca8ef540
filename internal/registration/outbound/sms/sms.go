package sms

import (
	"context"
	"fmt"
	"time"

	"github.com/mrasouli/otpreg/internal/pkg/instrument"
	"github.com/mrasouli/otpreg/internal/pkg/smsgateway"
	"github.com/mrasouli/otpreg/internal/registration/entity"
	"github.com/sethvargo/go-retry"
	"go.opentelemetry.io/otel/codes"
)

// Delivery sends passcodes over SMS with bounded retries. Provider hiccups
// are retried with exponential backoff; the budget stays small because the
// caller is an interactive HTTP request.
type Delivery struct {
	gateway    smsgateway.Gateway
	ins        instrument.Instrumentation
	maxRetries uint64
	backoff    time.Duration
}

type Config struct {
	Gateway    smsgateway.Gateway
	Instrument instrument.Instrumentation
	// MaxRetries caps the retry attempts after the first send. Zero
	// disables retrying.
	MaxRetries uint64
	// Backoff is the initial backoff between attempts. Zero means 250ms.
	Backoff time.Duration
}

func NewDelivery(cfg Config) *Delivery {
	backoff := cfg.Backoff
	if backoff == 0 {
		backoff = 250 * time.Millisecond
	}

	return &Delivery{
		gateway:    cfg.Gateway,
		ins:        cfg.Instrument,
		maxRetries: cfg.MaxRetries,
		backoff:    backoff,
	}
}

// Deliver sends the passcode to the destination's primary recipient.
func (d *Delivery) Deliver(ctx context.Context, dest entity.Destination, rec *entity.OtpRecord) (err error) {
	ctx, span := d.ins.Tracer("registration.outbound.sms").Start(ctx, "Deliver")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if dest.IsEmpty() {
		return fmt.Errorf("sms: destination is empty")
	}

	msg := smsgateway.Message{
		To:   dest.Primary(),
		Body: messageBody(rec),
	}

	backoff := retry.WithMaxRetries(d.maxRetries, retry.NewExponential(d.backoff))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if sendErr := d.gateway.Send(ctx, msg); sendErr != nil {
			return retry.RetryableError(sendErr)
		}
		return nil
	})
}

func messageBody(rec *entity.OtpRecord) string {
	switch rec.Purpose {
	case entity.OtpPurposeLogin:
		return fmt.Sprintf("Your login code is %s. It expires in 2 minutes.", rec.Code)
	default:
		return fmt.Sprintf("Your registration code is %s. It expires in 2 minutes.", rec.Code)
	}
}
