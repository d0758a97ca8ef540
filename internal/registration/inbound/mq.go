package inbound

import (
	"context"
	"log/slog"
	"slices"

	"github.com/mrasouli/otpreg/internal/pkg/config"
	"github.com/mrasouli/otpreg/internal/pkg/goroutine"
	"github.com/mrasouli/otpreg/internal/pkg/instrument"
	"github.com/mrasouli/otpreg/internal/pkg/messaging"
	"github.com/mrasouli/otpreg/internal/pkg/uid"
	"github.com/mrasouli/otpreg/internal/shared/event"
)

func RegisterMQConsumer(
	ctx context.Context,
	cfg config.Config,
	routine *goroutine.Manager,
	messenger messaging.Messaging,
	uuid uid.StringID,
	uc uc,
	ins instrument.Instrumentation,
) {
	mqHandler := &MQHandler{uc: uc, uuid: uuid, ins: ins}

	enableConsumerNames := cfg.GetArray("modules.registration.consumer_names")

	var consumers = []struct {
		name    string
		subject string
		handler messaging.Handler
	}{
		{
			name:    event.OtpIssuedConsumerAudit,
			subject: event.OtpIssuedSubject,
			handler: mqHandler.OtpIssuedAudit,
		},
		{
			name:    event.AccountVerifiedConsumerAudit,
			subject: event.AccountVerifiedSubject,
			handler: mqHandler.AccountVerifiedAudit,
		},
	}

	for _, consumer := range consumers {
		if len(enableConsumerNames) > 0 && slices.Contains(enableConsumerNames, consumer.name) {
			routine.Go(ctx, func(pCtx context.Context) error {
				slog.InfoContext(ctx, "Running job for handling consumer", "consumer", consumer.name)
				return messenger.Consume(pCtx,
					consumer.subject,
					consumer.handler,
					messaging.WithQueueGroup(consumer.name),
					messaging.WithAutoAck(true),
					messaging.WithConcurrency(10),
				)
			})
		}
	}
}
