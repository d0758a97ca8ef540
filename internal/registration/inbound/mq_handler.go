package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mrasouli/otpreg/internal/pkg/instrument"
	"github.com/mrasouli/otpreg/internal/pkg/messaging"
	"github.com/mrasouli/otpreg/internal/pkg/uid"
	"github.com/mrasouli/otpreg/internal/registration/usecase"
	"github.com/mrasouli/otpreg/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, headers []messaging.Header) context.Context {
	for i := range headers {
		if headers[i].Key == keyOfCorrelationID {
			return instrument.SetCorrelationID(ctx, string(headers[i].Value))
		}
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

func (h *MQHandler) OtpIssuedAudit(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("registration.inbound.mq").Start(ctx, "OtpIssuedAudit")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: otp issued audit", "subject", msg.Subject())

	var payload event.OtpIssuedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of otp issued audit", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumeOtpIssued(ctx, usecase.ConsumeOtpIssuedInput{
		AccountID: payload.AccountID,
		Mobile:    payload.Mobile,
		Purpose:   payload.Purpose,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume otp issued audit", "error", err)
		return err
	}

	return nil
}

func (h *MQHandler) AccountVerifiedAudit(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("registration.inbound.mq").Start(ctx, "AccountVerifiedAudit")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: account verified audit", "subject", msg.Subject())

	var payload event.AccountVerifiedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of account verified audit", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumeAccountVerified(ctx, usecase.ConsumeAccountVerifiedInput{
		AccountID: payload.AccountID,
		Mobile:    payload.Mobile,
		FullName:  payload.FullName,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume account verified audit", "error", err)
		return err
	}

	return nil
}
