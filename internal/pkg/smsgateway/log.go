package smsgateway

import (
	"context"
	"log/slog"
)

// Log is a Gateway that only logs messages. Used in development and tests
// where no provider is configured.
type Log struct{}

// NewLog constructs a log-only gateway.
func NewLog() *Log {
	return &Log{}
}

// Send logs the message instead of delivering it. The body is masked by the
// logging pipeline when it contains sensitive fields.
func (l *Log) Send(ctx context.Context, msg Message) error {
	slog.InfoContext(ctx, "sms send (log gateway)", "to", msg.To, "body", msg.Body)
	return nil
}

// Close implements io.Closer for interface compatibility.
func (l *Log) Close() error {
	return nil
}
